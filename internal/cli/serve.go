package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akv004/grab/internal/bridge"
	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/internal/shortcut"
	"github.com/akv004/grab/internal/tray"
)

var (
	serveAddr        string
	serveNoTray      bool
	serveNoShortcuts bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the capture daemon",
	Long: `serve starts the local HTTP bridge, registers the global capture
shortcuts, and parks in the system tray until quit. Frontends connect to
the bridge for commands and the event stream.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Bridge listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoTray, "no-tray", false, "Run without a tray icon")
	serveCmd.Flags().BoolVar(&serveNoShortcuts, "no-shortcuts", false, "Skip global shortcut registration")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("starting daemon", err)
	}
	defer cleanup()

	cfg := svc.cfg
	if serveAddr != "" {
		cfg.BridgeAddr = serveAddr
	}
	if serveNoTray {
		cfg.DisableTray = true
	}
	if serveNoShortcuts {
		cfg.DisableShortcuts = true
	}

	server := bridge.NewServer(svc.commands, svc.bus, svc.log)
	serverErr := make(chan error, 1)
	go func() {
		err := server.ListenAndServe(cfg.BridgeAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var shortcuts *shortcut.Manager
	if !cfg.DisableShortcuts {
		shortcuts = shortcut.NewManager(svc.commands, svc.log)
		shortcuts.Apply(svc.prefs.Get().Shortcuts)
		svc.commands.OnPreferencesChanged(func(p model.Preferences) {
			shortcuts.Apply(p.Shortcuts)
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if cfg.DisableTray {
		select {
		case sig := <-sigCh:
			svc.log.Info("received %s, shutting down", sig)
		case err := <-serverErr:
			svc.log.Error("bridge failed: %v", err)
		}
	} else {
		tr := tray.New(svc.commands, svc.log, nil)
		go func() {
			select {
			case sig := <-sigCh:
				svc.log.Info("received %s, shutting down", sig)
			case err := <-serverErr:
				svc.log.Error("bridge failed: %v", err)
			}
			tr.Quit()
		}()
		// Blocks until the Quit menu item or tr.Quit above.
		tr.Run()
	}

	if shortcuts != nil {
		shortcuts.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		svc.log.Warn("bridge shutdown: %v", err)
	}
	svc.log.Info("daemon stopped")
}
