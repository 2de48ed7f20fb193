package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:""`
	PostgresURL     string        `envconfig:"PG_URL" default:""`
	KafkaAddr       string        `envconfig:"KAFKA_ADDR" default:""`
	KafkaTopic      string        `envconfig:"KAFKA_TOPIC" default:"order.events"`
	OTLPEndpoint    string        `envconfig:"OTLP_ENDPOINT" default:""`
	TaxRate         string        `envconfig:"TAX_RATE" default:"0.07"`
	CompletionDelay time.Duration `envconfig:"COMPLETION_DELAY" default:"5s"`
	SeedOrder       bool          `envconfig:"SEED_ORDER" default:"true"`
	IdempotencyTTL  time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

func Load() (*Config, error) {
	// Optional; absent .env files are fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
