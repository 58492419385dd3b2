package commands

import (
	"log/slog"
	"os"

	"kilometrikisa-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(teamResultsCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Lists the teams the account has ridden in.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createLoginClient(cmd.Context(), readConfig())

		teams, err := client.MyTeams(cmd.Context())
		if teams == nil && err != nil {
			serviceutil.Fatal("failed to fetch teams", err)
		}
		if err != nil {
			slog.Warn("some contest ids could not be resolved", "err", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Team", "Contest", "Year", "Contest ID", "Link"})
		for _, team := range teams {
			t.AppendRow(table.Row{team.TeamName, team.Contest, team.Year, team.ContestID, team.Link})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var teamResultsCmd = &cobra.Command{
	Use:   "team-results <team link>",
	Short: "Prints the member standings of a team the account belongs to.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createLoginClient(cmd.Context(), readConfig())

		status, err := client.TeamResults(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch team results", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("%s (rank %s)", status.Name, status.Rank)
		t.AppendHeader(table.Row{"Rank", "Name", "Km", "Days"})
		for _, member := range status.Results {
			t.AppendRow(table.Row{member.Rank, member.Name, member.Km, member.Days})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
