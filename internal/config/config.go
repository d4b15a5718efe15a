// Package config loads the process configuration from environment variables.
package config

import (
	"fmt"
	"math/big"
	"net"
	"strconv"
	"time"

	"github.com/gabapcia/transferwatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// BigInt is a non-negative decimal integer read from the environment.
type BigInt struct {
	*big.Int
}

// Decode implements envconfig.Decoder.
func (b *BigInt) Decode(value string) error {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return fmt.Errorf("invalid decimal integer %q", value)
	}

	if n.Sign() < 0 {
		return fmt.Errorf("negative value %q", value)
	}

	b.Int = n
	return nil
}

// Node holds the settings needed to reach the JSON-RPC node. It is shared by
// every command that talks to the node.
type Node struct {
	NodeURL     string        `envconfig:"NODE_URL" default:"https://testnet-rpc.monad.xyz" validate:"required,url"`
	RPCTimeout  time.Duration `envconfig:"RPC_TIMEOUT" default:"10s" validate:"gt=0"`
	RPCRetryMax int           `envconfig:"RPC_RETRY_MAX" default:"2" validate:"min=0"`
}

// Config holds every setting of the transferwatch process.
type Config struct {
	Node

	TransferThreshold BigInt `envconfig:"TRANSFER_THRESHOLD" default:"50000000000000000000"`

	DatabaseURL          string `envconfig:"DATABASE_URL" validate:"required"`
	DatabaseEnsureSchema bool   `envconfig:"DATABASE_ENSURE_SCHEMA" default:"true"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost" validate:"required"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379" validate:"min=1,max=65535"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
	RedisTTL      int    `envconfig:"REDIS_TTL" default:"86400" validate:"min=1"` // seconds

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"large-transfers" validate:"required_with=KafkaBrokers"`

	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"5s" validate:"gt=0"`
	RPCMinInterval   time.Duration `envconfig:"RPC_MIN_INTERVAL" default:"200ms" validate:"gte=0"`
	BackoffBase      time.Duration `envconfig:"BACKOFF_BASE" default:"5s" validate:"gt=0"`
	BackoffMax       time.Duration `envconfig:"BACKOFF_MAX" default:"1m" validate:"gtefield=BackoffBase"`
	FullTransactions bool          `envconfig:"FULL_TRANSACTIONS" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`

	OTelEnabled     bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTelServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"transferwatch" validate:"required"`
}

// Load reads the configuration from the environment, applies defaults and
// validates it.
//
// Validation failures are joined with validator.ErrValidationFailed.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadNode reads only the node settings from the environment, applying the same
// defaults and validation as Load.
func LoadNode() (Node, error) {
	var node Node
	if err := envconfig.Process("", &node); err != nil {
		return Node{}, fmt.Errorf("load node configuration: %w", err)
	}

	if err := validator.Validate(node); err != nil {
		return Node{}, err
	}

	return node, nil
}

// RedisAddr returns the dedup store address as host:port.
func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

// RedisTTLDuration returns the dedup TTL.
func (c Config) RedisTTLDuration() time.Duration {
	return time.Duration(c.RedisTTL) * time.Second
}

// Threshold returns a copy of the transfer threshold in the smallest unit.
func (c Config) Threshold() *big.Int {
	if c.TransferThreshold.Int == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(c.TransferThreshold.Int)
}
