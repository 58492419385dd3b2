package commands

import (
	"os"

	"kilometrikisa-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var leaderboardPages *int

func init() {
	leaderboardPages = leaderboardCmd.Flags().Int(
		"pages", 1,
		"The number of leaderboard pages to fetch.",
	)
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Prints the general team leaderboard of the latest contest.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context(), readConfig())

		pageUrl, err := client.AllTeamsTopListPage(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to resolve leaderboard page", err)
		}
		entries, err := client.LeaderboardPages(cmd.Context(), pageUrl, *leaderboardPages)
		if err != nil {
			serviceutil.Fatal("failed to fetch leaderboard", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Rank", "Team", "Km/person", "Km total", "Days"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Rank, e.Name, e.KmPerPerson, e.KmTotal, e.Days})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
