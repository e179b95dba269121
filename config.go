package docwiki

import "docwiki/internal/runtimeconfig"

type (
	Config          = runtimeconfig.Config
	RetentionConfig = runtimeconfig.RetentionConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultRetentionDays re-exports the default trash retention window.
const DefaultRetentionDays = runtimeconfig.DefaultRetentionDays

// DefaultConfig returns the configuration used when the host supplies nothing.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv loads configuration from a .env file and the environment.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv()
}
