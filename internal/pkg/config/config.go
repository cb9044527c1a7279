package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=driftbox"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// StorageConfig holds the object-store credentials. All of them are
// required: a gateway that cannot reach its blob store must not start.
type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT,   required"`
	AccessKey string `env:"STORAGE_ACCESS_KEY, required"`
	SecretKey string `env:"STORAGE_SECRET_KEY, required"`
	Bucket    string `env:"STORAGE_BUCKET,     required"`
	Region    string `env:"STORAGE_REGION"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required secrets are a fatal startup condition.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
