// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/authpages/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the backends are ready and
// before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{PageLoad: appCfg.PageLoadTimeout})
	logger.Info("timeouts configured",
		zap.Duration("ping", timeouts.Ping()),
		zap.Duration("short", timeouts.Short()),
		zap.Duration("page_load", timeouts.PageLoad()),
	)
	if deps.Cleanup != nil {
		deps.Cleanup.Start()
	}
	return nil
}
