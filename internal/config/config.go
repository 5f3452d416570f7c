package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
// It is read once at startup and injected into the components that need it;
// nothing reads the environment after Load returns.
type Config struct {
	Env         string `env:"APP_ENV" env-default:"development"`
	ServerPort  string `env:"SERVER_PORT" env-default:"5000"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"host=localhost user=postgres password=postgres dbname=studentrecords port=5432 sslmode=disable"`
	JWTSecret   string `env:"JWT_SECRET" env-default:"change-me"`
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read config: %v", err)
	}
	return &cfg
}

// IsProduction reports whether the process runs with production error output
// (no stack traces in 500 responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
