package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidPort is returned by Validate when PORT is not a usable TCP port.
var ErrInvalidPort = errors.New("invalid port")

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; unset or malformed values fall back to defaults.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DatabaseURI string // store connection string, scheme selects the driver
	LogLevel    string // debug, info, warn or error
	MetricsAddr string // listen address for /metrics; empty disables it

	DB       DBPoolConfig
	RabbitMQ string // broker URL for seed events; empty disables publishing
}

// DBPoolConfig tunes the database/sql connection pool.
type DBPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// DefaultDatabaseURI points at a file-backed SQLite store in the working directory.
const DefaultDatabaseURI = "sqlite:///birds.db"

// Load reads configuration values from environment variables and returns a
// Config.  Nothing here is required: every key has a default.
func Load() Config {
	return Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        envStr("PORT", "5000"),
		DatabaseURI: envStr("DATABASE_URI", DefaultDatabaseURI),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		MetricsAddr: envStr("METRICS_ADDR", ""),
		DB: DBPoolConfig{
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			PingTimeout:     envDur("DB_PING_TIMEOUT", 5*time.Second),
		},
		RabbitMQ: envStr("RABBITMQ_URL", envStr("AMQP_URL", "")),
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	n, err := strconv.Atoi(c.Port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	return nil
}

// Addr is the listen address for the public HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
