package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"false"`
	OpsPort    int    `env:"OPS_PORT" envDefault:"8080"`

	PgURL     string `env:"PG_URL,required"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	IMAPHost    string `env:"IMAP_HOST,required"`
	IMAPPort    int    `env:"IMAP_PORT" envDefault:"993"`
	IMAPUser    string `env:"IMAP_USER,required"`
	IMAPPass    string `env:"IMAP_PASS,required"`
	IMAPMailbox string `env:"IMAP_MAILBOX" envDefault:"INBOX"`

	AiraloBaseURL      string `env:"AIRALO_BASE_URL" envDefault:"https://partners-api.airalo.com/v2"`
	AiraloClientID     string `env:"AIRALO_CLIENT_ID,required"`
	AiraloClientSecret string `env:"AIRALO_CLIENT_SECRET,required"`

	// Token requests should fail fast; provisioning calls are allowed to be slow.
	AiraloAuthTimeout  time.Duration `env:"AIRALO_AUTH_TIMEOUT" envDefault:"10s"`
	AiraloOrderTimeout time.Duration `env:"AIRALO_ORDER_TIMEOUT" envDefault:"60s"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`

	// Kafka is optional: with no brokers configured fulfillment events are dropped.
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaEventsTopic string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"fulfillment.events"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
