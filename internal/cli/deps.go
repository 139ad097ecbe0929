package cli

import (
	"fmt"
	"os"

	"github.com/akv004/grab/internal/app"
	"github.com/akv004/grab/internal/capture"
	"github.com/akv004/grab/internal/clipboard"
	"github.com/akv004/grab/internal/command"
	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/notify"
	"github.com/akv004/grab/internal/pipeline"
	"github.com/akv004/grab/internal/store"
)

// services bundles the wired capture stack for one CLI invocation. The
// daemon and the one-shot commands build the same stack so every trigger
// surface shares stores, pipeline, and behavior.
type services struct {
	cfg       *app.Config
	configDir string
	log       *logging.Logger
	bus       *event.Bus
	prefs     *store.PreferencesStore
	history   *store.HistoryStore
	engine    *capture.Engine
	processor *pipeline.Processor
	commands  *command.Service
}

// buildServices loads the config and wires the stack. The returned cleanup
// stops the bus and closes the logger; callers defer it.
func buildServices() (*services, func(), error) {
	configDir := configDirFlag
	if configDir == "" {
		var err error
		configDir, err = app.ConfigDir()
		if err != nil {
			return nil, nil, err
		}
	}

	cfg, err := app.LoadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	if debugFlag {
		cfg.Debug = true
	}

	log := logging.New(cfg.Debug)
	if cfg.LogFile != "" {
		if err := log.SetFile(cfg.LogFile); err != nil {
			log.Warn("log file unavailable: %v", err)
		}
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		log.Close()
		return nil, nil, err
	}

	prefs, err := store.NewPreferencesStore(dataDir, log)
	if err != nil {
		log.Close()
		return nil, nil, err
	}
	history, err := store.NewHistoryStore(dataDir, log)
	if err != nil {
		log.Close()
		return nil, nil, err
	}

	bus := event.NewBus()
	engine := capture.NewEngine(capture.ScreenshotBackend{}, capture.NewWindowBackend(), log)
	clip := clipboard.NewWriter(log)
	notifier := notify.NewNotifier(log)
	processor := pipeline.NewProcessor(history, clip, notifier, bus, log)

	commands := command.NewService(command.Deps{
		Engine:    engine,
		Processor: processor,
		Prefs:     prefs,
		History:   history,
		Clipboard: clip,
		Dialogs:   command.NativeDialogs{},
		Opener:    command.ShellOpener{},
		Bus:       bus,
		Log:       log,
	})

	svc := &services{
		cfg:       cfg,
		configDir: configDir,
		log:       log,
		bus:       bus,
		prefs:     prefs,
		history:   history,
		engine:    engine,
		processor: processor,
		commands:  commands,
	}
	cleanup := func() {
		bus.Stop()
		log.Close()
	}
	return svc, cleanup, nil
}

// fail prints err and exits, the shared error path for one-shot commands.
func fail(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}
