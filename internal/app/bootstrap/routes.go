// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	contextsfeature "github.com/dalemusser/authpages/internal/app/features/contexts"
	"github.com/dalemusser/authpages/internal/app/features/defaultpage"
	errorsfeature "github.com/dalemusser/authpages/internal/app/features/errors"
	healthfeature "github.com/dalemusser/authpages/internal/app/features/health"
	kcpagefeature "github.com/dalemusser/authpages/internal/app/features/kcpage"
	"github.com/dalemusser/authpages/internal/app/features/layout"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/intakeauth"
	"github.com/dalemusser/authpages/internal/app/system/metrics"
	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
	"github.com/dalemusser/authpages/internal/app/system/ui"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for authpages.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. It loads the message catalog and the page shell,
// builds the page dispatcher and mounts:
//   - /health          health check
//   - /metrics         Prometheus metrics
//   - /static/*        login.js and the base stylesheet
//   - /render          render a context posted in the body (identity server only)
//   - /pages/{token}   render a registered snapshot
//   - /api/contexts    register a context (identity server only)
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	catalog, err := i18n.Load(appCfg.DefaultLanguage)
	if err != nil {
		logger.Error("message catalog load failed", zap.Error(err))
		return nil, err
	}

	// The login page carries its own styling; the default and error pages
	// may layer the identity server's stock classes.
	themed, err := layout.New(layout.Theme{
		LogoURL:      appCfg.LogoURL,
		StaticPrefix: "/static",
	})
	if err != nil {
		logger.Error("layout template parse failed", zap.Error(err))
		return nil, err
	}
	stock, err := layout.New(layout.Theme{
		Clsx:         ui.Clsx{UseDefaultCSS: appCfg.UseDefaultCSS},
		LogoURL:      appCfg.LogoURL,
		StaticPrefix: "/static",
	})
	if err != nil {
		logger.Error("layout template parse failed", zap.Error(err))
		return nil, err
	}

	tokens, err := pagetoken.New([]byte(appCfg.TokenKey), appCfg.SnapshotTTL)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	pages := kcpagefeature.NewStandard(themed, stock, m, logger)

	// Pages load lazily; prod loads them up front so a broken template
	// fails startup instead of the first login.
	if coreCfg.Env == "prod" {
		ctx, cancel := context.WithTimeout(context.Background(), appCfg.PageLoadTimeout)
		defer cancel()
		if err := pages.Preload(ctx); err != nil {
			return nil, fmt.Errorf("preload pages: %w", err)
		}
	}

	errPages := errorsfeature.NewPages(defaultpage.New(stock), catalog)
	errLog := errorsfeature.NewErrorLogger(logger, errPages)

	r := chi.NewRouter()

	// Only trust forwarding headers when a proxy in front rewrites them;
	// otherwise clients could pick their own rate limit key.
	if appCfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}

	// Set before mounting so subrouters inherit it.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errLog.LogNotFound(w, req, "no route", nil, "pageNotFound")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.SnapshotBackend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", m.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Intake API and /render share the identity server's key.
	guard := intakeauth.New(appCfg.IntakeKeyHash, logger)

	contextsHandler := contextsfeature.NewHandler(deps.Snapshots, tokens, appCfg.BaseURL, errLog, m, logger)
	r.Mount("/api/contexts", contextsfeature.Routes(contextsHandler, guard, deps.IntakeLimiter))

	// Login pages
	pageHandler := kcpagefeature.NewHandler(pages, catalog, deps.Snapshots, tokens, errLog, m, logger)
	r.Mount("/", kcpagefeature.Routes(pageHandler, guard))

	return r, nil
}
