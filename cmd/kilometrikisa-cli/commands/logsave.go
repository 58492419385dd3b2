package commands

import (
	"log/slog"
	"strconv"

	"kilometrikisa-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logSaveCmd)
}

var logSaveCmd = &cobra.Command{
	Use:   "log-save <contest id> <yyyy-mm-dd> <km>",
	Short: "Records ridden kilometers for a day.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		km, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			serviceutil.Fatal("failed to parse kilometer amount", err)
		}

		client := createLoginClient(cmd.Context(), readConfig())

		err = client.UpdateLog(cmd.Context(), args[0], args[1], km)
		if err != nil {
			serviceutil.Fatal("failed to save log entry", err)
		}
		slog.Info("log entry saved", "contest", args[0], "date", args[1], "km", km)
	},
}
