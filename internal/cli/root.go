// Package cli implements the grab command line. "grab serve" runs the
// long-lived daemon; the other subcommands are one-shot operations against
// the same capture stack and stores.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configDirFlag string
	debugFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "grab",
	Short: "Screen capture daemon and CLI",
	Long: `grab captures displays, windows, and regions, keeps a capture history,
and runs a local bridge for UI frontends. Start the daemon with
"grab serve" for the tray icon, global shortcuts, and the HTTP bridge,
or use the other subcommands for one-shot captures from scripts.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Override the config directory")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}
