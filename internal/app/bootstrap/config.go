// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/authpages/internal/app/system/pagetoken"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for authpages.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, snapshot_backend, etc.
//   - Environment variables: AUTHPAGES_MONGO_URI, AUTHPAGES_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend)"},
	{Name: "mongo_database", Default: "authpages", Desc: "MongoDB database name"},

	// Snapshots
	{Name: "snapshot_backend", Default: BackendMemory, Desc: "Snapshot storage: 'memory' or 'mongo'"},
	{Name: "snapshot_ttl", Default: "30m", Desc: "How long a registered context can be rendered (e.g., 30m, 1h)"},
	{Name: "snapshot_cleanup_interval", Default: "5m", Desc: "How often expired Mongo snapshots are swept"},
	{Name: "token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Page token signing key, at least 32 bytes"},

	// Intake API
	{Name: "intake_key_hash", Default: "", Desc: "bcrypt hash of the intake bearer key (blank disables auth)"},
	{Name: "intake_rate_limit", Default: 60, Desc: "Context registrations allowed per client per window"},
	{Name: "intake_rate_window", Default: "1m", Desc: "Intake rate limit window"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Honor X-Forwarded-For/X-Real-IP from a trusted proxy"},

	// Rendering
	{Name: "page_load_timeout", Default: "3s", Desc: "Timeout for loading a page component"},
	{Name: "default_language", Default: "en", Desc: "Fallback message language"},
	{Name: "use_default_css", Default: true, Desc: "Add the stock stylesheet classes to the default and error pages"},
	{Name: "logo_url", Default: "", Desc: "Logo shown above the card (blank for none)"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL of the pages"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// AUTHPAGES_* environment variables and flags, with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "AUTHPAGES", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SnapshotBackend: appValues.String("snapshot_backend"),
		SnapshotTTL:     appValues.Duration("snapshot_ttl", 30*time.Minute),
		CleanupInterval: appValues.Duration("snapshot_cleanup_interval", 5*time.Minute),
		TokenKey:        appValues.String("token_key"),

		IntakeKeyHash:    appValues.String("intake_key_hash"),
		IntakeRateLimit:  appValues.Int("intake_rate_limit"),
		IntakeRateWindow: appValues.Duration("intake_rate_window", time.Minute),

		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		PageLoadTimeout: appValues.Duration("page_load_timeout", 3*time.Second),
		DefaultLanguage: appValues.String("default_language"),
		UseDefaultCSS:   appValues.Bool("use_default_css"),
		LogoURL:         appValues.String("logo_url"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.SnapshotBackend {
	case BackendMemory:
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return errors.New("mongo_database is required with the mongo snapshot backend")
		}
	default:
		return fmt.Errorf("snapshot_backend must be %q or %q, got %q", BackendMemory, BackendMongo, appCfg.SnapshotBackend)
	}

	if len(appCfg.TokenKey) < pagetoken.MinKeyLen {
		return fmt.Errorf("token_key must be at least %d bytes", pagetoken.MinKeyLen)
	}
	if appCfg.SnapshotTTL <= 0 {
		return errors.New("snapshot_ttl must be positive")
	}
	if appCfg.SnapshotBackend == BackendMongo && appCfg.CleanupInterval <= 0 {
		return errors.New("snapshot_cleanup_interval must be positive")
	}
	if appCfg.IntakeRateLimit < 0 || appCfg.IntakeRateWindow <= 0 {
		return errors.New("intake_rate_limit must be >= 0 and intake_rate_window positive")
	}
	if appCfg.PageLoadTimeout <= 0 {
		return errors.New("page_load_timeout must be positive")
	}
	if appCfg.BaseURL == "" {
		return errors.New("base_url is required")
	}

	if appCfg.IntakeKeyHash == "" {
		if coreCfg != nil && coreCfg.Env == "prod" {
			return errors.New("intake_key_hash is required in prod")
		}
		logger.Warn("intake API is unauthenticated; set intake_key_hash")
	}
	return nil
}
