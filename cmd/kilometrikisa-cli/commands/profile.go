package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Logs in and prints the account profile.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := createClient(cmd.Context(), cfg)

		user, err := client.Login(cmd.Context(), cfg.Username, cfg.Password)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"Nickname", user.Nickname},
			{"First name", user.FirstName},
			{"Last name", user.LastName},
			{"Email", user.Email},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
