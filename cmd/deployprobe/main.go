package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/deployprobe/internal/app"
	"github.com/hamed0406/deployprobe/internal/config"
	"github.com/hamed0406/deployprobe/internal/logging"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		// still run: each bad target simply fails its own check
		logger.Warn("config_invalid", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx, cfg, logger, app.NewDriver(cfg, logger), os.Stdout)
}
