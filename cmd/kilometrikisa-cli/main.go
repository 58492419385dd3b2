package main

import (
	"context"

	"kilometrikisa-backend/cmd/kilometrikisa-cli/commands"
	"kilometrikisa-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "kilometrikisa-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
