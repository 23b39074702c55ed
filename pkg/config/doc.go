// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file (when present) is loaded exactly once per process, and
// each configuration struct type is parsed at most once and cached, so
// independent components can call Load for the same type without re-reading
// the environment.
//
// Define a struct with env tags and load it:
//
//	type StoreConfig struct {
//	    DatabaseURL string `env:"DATABASE_URL,required"`
//	    MaxConns    int    `env:"DB_MAX_CONNS" envDefault:"10"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//	    // Handle missing or malformed environment
//	}
//
// MustLoad panics on failure and is intended for configuration the process
// cannot start without. Reset clears the cache and is meant for tests.
package config
