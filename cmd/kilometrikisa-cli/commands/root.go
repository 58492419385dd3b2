package commands

import (
	"context"
	"fmt"
	"os"

	"kilometrikisa-backend/lib/configutil"
	"kilometrikisa-backend/lib/restyutil"
	scraper "kilometrikisa-backend/lib/scrapers/kilometrikisa"
	"kilometrikisa-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
	BaseUrl  string `json:"base_url"`
}

var debugHttp *bool

var rootCmd = &cobra.Command{
	Use:   "kilometrikisa-cli",
	Short: "kilometrikisa-cli scrapes contests, team standings and ride logs from kilometrikisa.fi.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if *debugHttp {
			scraper.SetRestyDumpOutput(restyutil.NewFilesystemOutput(".dev/resty/cli"))
		}
	},
}

func init() {
	debugHttp = rootCmd.PersistentFlags().Bool(
		"debug-http", false,
		"Dump every http exchange with the contest site to .dev/resty/cli.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

// createClient opens an anonymous session against the contest site.
func createClient(ctx context.Context, cfg Config) *scraper.Client {
	client, err := scraper.NewClient(ctx, scraper.ClientOptions{BaseUrl: cfg.BaseUrl})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	return client
}

// createLoginClient opens a session and logs in with the configured
// credentials.
func createLoginClient(ctx context.Context, cfg Config) *scraper.Client {
	client := createClient(ctx, cfg)
	_, err := client.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login", err)
	}
	return client
}
