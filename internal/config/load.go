package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// envPrefix namespaces the environment variables this application reads,
// e.g. TASKDECK_AUTH_JWT_SECRET maps to auth.jwt_secret.
const envPrefix = "TASKDECK"

// Load reads configuration from environment variables, with an optional
// .env file providing local development values. Environment variables take
// precedence. Returns a populated Config or an error when loading or
// validation fails.
func Load() (*Config, error) {
	// Best effort; a missing .env file is the normal production case.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
