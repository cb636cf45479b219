package main

import (
	"log/slog"

	"github.com/nexttoyou/nexttoyou/adapter/cli"
	"github.com/nexttoyou/nexttoyou/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	cli.Execute()
}
