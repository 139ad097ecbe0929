package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/akv004/grab/internal/cli/picker"
	"github.com/akv004/grab/internal/model"
)

var (
	sourcesWindows bool
	sourcesJSON    bool
	sourcesPick    bool
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List capture sources",
	Long: `sources enumerates the attached displays, or the open windows with
--windows. With --pick an interactive picker prints the chosen source ID,
ready for "grab capture display <id>" or "grab capture window <id>".`,
	Run: runSources,
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesWindows, "windows", false, "List windows instead of displays")
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "Emit JSON")
	sourcesCmd.Flags().BoolVar(&sourcesPick, "pick", false, "Pick a source interactively and print its ID")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("listing sources", err)
	}
	defer cleanup()

	var sources []model.CaptureSource
	if sourcesWindows {
		sources, err = svc.engine.ListWindowSources()
	} else {
		sources, err = svc.engine.ListScreenSources()
	}
	if err != nil {
		fail("listing sources", err)
	}

	if sourcesPick {
		title := "Pick a display"
		if sourcesWindows {
			title = "Pick a window"
		}
		src, ok, err := picker.Run(title, sources)
		if err != nil {
			fail("running picker", err)
		}
		if !ok {
			os.Exit(1)
		}
		fmt.Println(src.ID)
		return
	}

	if sourcesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(sources)
		return
	}

	if len(sources) == 0 {
		fmt.Println("No sources found")
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"ID", "Kind", "Name"})
	for _, s := range sources {
		t.AppendRow(table.Row{s.ID, s.Kind, s.Name})
	}
	fmt.Println(t.Render())
}
