package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/internal/shortcut"
	"github.com/akv004/grab/pkg/utils"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and edit preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current preferences as JSON",
	Run:   runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference and persist it",
	Long: `set updates a single preference. Keys match the JSON field names:
outputFolder, copyToClipboard, saveToDisk, defaultMode, namingTemplate,
openEditorAfterCapture, hideEditorDuringCapture, showNotifications,
shortcuts.fullScreen, shortcuts.region, shortcuts.window.`,
	Args: cobra.ExactArgs(2),
	Run:  runPrefsSet,
}

var prefsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the preferences file path",
	Run:   runPrefsPath,
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd, prefsPathCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsGet(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("loading preferences", err)
	}
	defer cleanup()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(svc.prefs.Get())
}

func runPrefsSet(cmd *cobra.Command, args []string) {
	key, value := args[0], args[1]

	svc, cleanup, err := buildServices()
	if err != nil {
		fail("loading preferences", err)
	}
	defer cleanup()

	prefs := svc.prefs.Get()
	if err := applyPrefsKey(&prefs, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := svc.commands.SetPreferences(prefs); err != nil {
		fail("saving preferences", err)
	}
	fmt.Printf("%s = %s\n", key, value)
}

func runPrefsPath(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("loading preferences", err)
	}
	defer cleanup()

	fmt.Println(svc.prefs.Path())
}

func applyPrefsKey(prefs *model.Preferences, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		return b, nil
	}
	parseAccel := func() (string, error) {
		if _, _, err := shortcut.Parse(value); err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		return value, nil
	}

	switch key {
	case "outputFolder":
		prefs.OutputFolder = utils.ExpandPath(value)
	case "copyToClipboard":
		b, err := parseBool()
		if err != nil {
			return err
		}
		prefs.CopyToClipboard = b
	case "saveToDisk":
		b, err := parseBool()
		if err != nil {
			return err
		}
		prefs.SaveToDisk = b
	case "openEditorAfterCapture":
		b, err := parseBool()
		if err != nil {
			return err
		}
		prefs.OpenEditorAfterCapture = b
	case "hideEditorDuringCapture":
		b, err := parseBool()
		if err != nil {
			return err
		}
		prefs.HideEditorDuringCapture = b
	case "showNotifications":
		b, err := parseBool()
		if err != nil {
			return err
		}
		prefs.ShowNotifications = b
	case "defaultMode":
		switch mode := model.CaptureMode(value); mode {
		case model.ModeFullScreen, model.ModeDisplay, model.ModeWindow, model.ModeRegion:
			prefs.DefaultMode = mode
		default:
			return fmt.Errorf("defaultMode wants full-screen, display, window, or region, got %q", value)
		}
	case "namingTemplate":
		prefs.NamingTemplate = value
	case "shortcuts.fullScreen":
		accel, err := parseAccel()
		if err != nil {
			return err
		}
		prefs.Shortcuts.FullScreen = accel
	case "shortcuts.region":
		accel, err := parseAccel()
		if err != nil {
			return err
		}
		prefs.Shortcuts.Region = accel
	case "shortcuts.window":
		accel, err := parseAccel()
		if err != nil {
			return err
		}
		prefs.Shortcuts.Window = accel
	default:
		return fmt.Errorf("unknown preference key %q", key)
	}
	return nil
}
