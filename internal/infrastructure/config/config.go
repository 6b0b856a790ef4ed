package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL string `env:"BACKEND_BASE_URL, default=http://localhost:8085/api"`
	// PinSetupPath is configurable: observed backend versions disagree
	// between /auth/setup-pin and /user/setup-pin.
	PinSetupPath string        `env:"BACKEND_PIN_SETUP_PATH, default=/auth/setup-pin"`
	Timeout      time.Duration `env:"BACKEND_TIMEOUT,        default=15s"`
}

type SessionConfig struct {
	// TTL bounds the server-side session; it should not outlive the
	// backend token lifetime by much.
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieName string        `env:"SESSION_COOKIE, default=wallet_session"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wallet_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
