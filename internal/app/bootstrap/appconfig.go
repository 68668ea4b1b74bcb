// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (HTTP ports, TLS, logging level, CORS);
// AppConfig is everything specific to the announcement service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Base URL this service is reachable at, for logs and probes.
	BaseURL string

	// Seed teacher account, created on startup if absent. The account is
	// what lets a fresh deployment pass the teacher-existence gate before
	// the directory has been populated by the auth subsystem.
	SeedTeacherUsername    string
	SeedTeacherDisplayName string
	SeedTeacherPassword    string
}
