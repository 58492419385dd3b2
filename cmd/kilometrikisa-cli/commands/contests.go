package commands

import (
	"os"

	"kilometrikisa-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(contestsCmd)
}

var contestsCmd = &cobra.Command{
	Use:   "contests",
	Short: "Lists the contests advertised on the front page.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context(), readConfig())

		contests, err := client.Contests(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch contests", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Link"})
		for _, c := range contests {
			t.AppendRow(table.Row{c.Name, c.Link})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
