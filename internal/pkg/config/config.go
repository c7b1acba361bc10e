package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port string `env:"PORT, default=5000"`
	Env  string `env:"ENV,  default=development"`

	// Access and refresh tokens are signed with independent secrets so a
	// token of one kind can never verify as the other.
	JWTSecret     string `env:"JWT_SECRET,     default=supersecret"`
	RefreshSecret string `env:"REFRESH_SECRET, default=refreshsecret"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	// URI is a required startup precondition; a missing value is fatal.
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=ireserve"`
}

type RedisConfig struct {
	// Addr is optional. When empty the refresh token registry falls back
	// to its in-process implementation.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
