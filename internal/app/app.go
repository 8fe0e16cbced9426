package app

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/hamed0406/deployprobe/internal/browser"
	"github.com/hamed0406/deployprobe/internal/config"
	"github.com/hamed0406/deployprobe/internal/fetch"
	"github.com/hamed0406/deployprobe/internal/probe"
)

func NewDriver(cfg config.Config, logger *zap.Logger) probe.Driver {
	if cfg.Driver == config.DriverHTTP {
		return fetch.NewDriver()
	}
	return browser.NewDriver(logger, cfg.Headless, cfg.BrowserBin, cfg.IdleWindow)
}

// Run performs one probe pass. Check outcomes never turn into an error.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger, d probe.Driver, out io.Writer) []probe.CheckResult {
	checks := probe.DefaultChecks(cfg.RemoteURL, cfg.LocalURL, cfg.RemoteTimeout, cfg.LocalTimeout)
	logger.Info("probe_start",
		zap.String("driver", cfg.Driver),
		zap.String("remote_url", cfg.RemoteURL),
		zap.String("local_url", cfg.LocalURL),
		zap.Int("checks", len(checks)),
	)

	results := probe.NewProber(logger, d, out, checks).Run(ctx)

	live := 0
	for _, r := range results {
		if r.Success {
			live++
		}
	}
	logger.Info("probe_done", zap.Int("live", live), zap.Int("total", len(results)))
	return results
}
