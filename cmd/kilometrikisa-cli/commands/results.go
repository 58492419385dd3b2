package commands

import (
	"os"
	"strconv"
	"time"

	"kilometrikisa-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var resultsYear *int

func init() {
	resultsYear = resultsCmd.Flags().Int(
		"year", time.Now().Year(),
		"The year whose ride log to fetch.",
	)
	rootCmd.AddCommand(resultsCmd)
}

var resultsCmd = &cobra.Command{
	Use:   "results <contest id>",
	Short: "Prints the account's ride log for a contest.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createLoginClient(cmd.Context(), readConfig())

		entries, err := client.UserResults(cmd.Context(), args[0], *resultsYear)
		if err != nil {
			serviceutil.Fatal("failed to fetch ride log", err)
		}

		total := 0.0
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Date", "Km"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Date, e.Km})
			total += e.Km
		}
		t.AppendFooter(table.Row{"Total", strconv.FormatFloat(total, 'f', -1, 64)})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
