package main

import (
	"context"
	"flag"
	"net/http"

	"kilometrikisa-backend/lib/configutil"
	"kilometrikisa-backend/lib/restyutil"
	scraper "kilometrikisa-backend/lib/scrapers/kilometrikisa"
	"kilometrikisa-backend/lib/serviceutil"
	"kilometrikisa-backend/lib/telemetry"
	"kilometrikisa-backend/services/kilometrikisa"
)

type Config struct {
	Port    int    `json:"port"`
	BaseUrl string `json:"base_url"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	t, err := telemetry.SetupFromEnv(ctx, "kilometrikisad")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)
	telemetry.InitSlog(*verbose)

	if *verbose {
		scraper.SetRestyDumpOutput(
			restyutil.NewFilesystemOutput(".dev/resty/kilometrikisa"),
		)
	}

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8000
	}

	mux := http.NewServeMux()
	kilometrikisa.NewService(config.BaseUrl).Register(mux)
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
