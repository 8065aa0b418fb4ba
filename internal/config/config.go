package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	Environment string
	DataDir     string // where the local store's database file lives
	TablePrefix string
	CORSOrigins string
	JWKSURL     string // empty disables the auth gate (dev only)
	LogDir      string // empty logs to stdout only
	MaxLogFiles int
	// Chat proxy configuration
	OpenAIAPIKey  string
	OpenAIBaseURL string
	DefaultModel  string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DataDir:       getEnv("DATA_DIR", "data"),
		TablePrefix:   getTablePrefix(env),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWKSURL:       getEnv("JWKS_URL", ""),
		LogDir:        getEnv("LOG_DIR", ""),
		MaxLogFiles:   10,
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		DefaultModel:  getEnv("DEFAULT_MODEL", "gpt-4o-mini"),
		Debug:         getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// StorePath is the location of the structured local store's database file.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "inkwell.db")
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
