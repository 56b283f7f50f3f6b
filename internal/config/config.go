package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string        `env:"RUN_ADDRESS" env-default:"localhost:8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	PrivateKey  string        `env:"PRIVATE_KEY" env-default:"privatekey"`
	SessionTTL  time.Duration `env:"SESSION_TTL" env-default:"24h"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// .env is optional; system environment wins when both are present.
	_ = godotenv.Load()

	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
