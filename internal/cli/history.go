package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/akv004/grab/pkg/utils"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show tracked captures",
	Long: `history lists the tracked captures, newest first. The output folder is
scanned first so files dropped there by other tools show up too.`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show at most this many entries (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Emit JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("loading history", err)
	}
	defer cleanup()

	items := svc.commands.GetHistory()
	if historyLimit > 0 && len(items) > historyLimit {
		items = items[:historyLimit]
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(items)
		return
	}

	if len(items) == 0 {
		fmt.Println("No captures yet")
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"When", "File"})
	for _, item := range items {
		when := item.Timestamp
		if ts, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			when = ts.Local().Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{when, utils.DisplayPath(item.FilePath)})
	}
	fmt.Println(t.Render())
}
