// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side (ports, TLS, logging, CORS, body limits); everything the
// login pages themselves need lives here.
type AppConfig struct {
	// MongoDB connection configuration (only used with the mongo backend)
	MongoURI      string
	MongoDatabase string

	// Snapshot storage
	SnapshotBackend string        // "memory" or "mongo"
	SnapshotTTL     time.Duration // how long a registered context stays renderable
	CleanupInterval time.Duration // sweep of expired Mongo snapshots

	// TokenKey signs the /pages/{token} URLs. At least 32 bytes.
	TokenKey string

	// Intake API
	IntakeKeyHash    string // bcrypt hash of the bearer key; blank disables the check
	IntakeRateLimit  int    // registrations per client per window
	IntakeRateWindow time.Duration

	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool

	// Rendering
	PageLoadTimeout time.Duration // bound on loading a page component
	DefaultLanguage string        // used when neither context nor browser selects one
	UseDefaultCSS   bool          // stock stylesheet classes on the default and error pages
	LogoURL         string

	// BaseURL prefixes the page URLs handed back by the intake API.
	BaseURL string
}

// Snapshot backends.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)
