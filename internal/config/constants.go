package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./radreads.db"

	// DefaultEnvFile is loaded before reading the environment, if present
	DefaultEnvFile = ".env"
)
