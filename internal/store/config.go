package store

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const localURI = "mongodb://localhost:27017"

// Config describes how to reach the document store and which collection the
// gateway reads and writes.
type Config struct {
	// URI, when set, is used verbatim and wins over every other address field.
	URI string `yaml:"uri" env:"MONGO_URI"`

	// Dev switches to a local, unauthenticated server.
	Dev bool `yaml:"dev" env:"DEV"`

	Host     string `yaml:"host" env:"MONGO_HOST"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`

	Database   string `yaml:"database" env:"MONGO_DB"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION"`

	MaxPoolSize     uint64        `yaml:"max_pool_size" env:"MONGO_MAX_POOL_SIZE"`
	MinPoolSize     uint64        `yaml:"min_pool_size" env:"MONGO_MIN_POOL_SIZE"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"MONGO_MAX_CONN_IDLE_TIME"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT"`

	// PoolStatusTimeout bounds the diagnostic serverStatus call made after
	// each request. Store operations themselves carry no deadline.
	PoolStatusTimeout time.Duration `yaml:"pool_status_timeout" env:"MONGO_POOL_STATUS_TIMEOUT"`

	// AppName is reported to the server in the connection handshake. It is
	// filled from the service name when empty.
	AppName string `yaml:"app_name"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Database:          "logs-manager",
		Collection:        "logs",
		MaxPoolSize:       100,
		MaxConnIdleTime:   5 * time.Minute,
		ConnectTimeout:    10 * time.Second,
		PoolStatusTimeout: 2 * time.Second,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.Collection == "" {
		c.Collection = defaults.Collection
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = defaults.MaxPoolSize
	}
	if c.MaxConnIdleTime == 0 {
		c.MaxConnIdleTime = defaults.MaxConnIdleTime
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaults.ConnectTimeout
	}
	if c.PoolStatusTimeout == 0 {
		c.PoolStatusTimeout = defaults.PoolStatusTimeout
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("store env: %w", err)
	}
	return nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if _, err := c.ConnectionURI(); err != nil {
		return err
	}
	if c.Database == "" {
		return errors.New("store.database is required")
	}
	if c.Collection == "" {
		return errors.New("store.collection is required")
	}
	if c.MinPoolSize > c.MaxPoolSize {
		return fmt.Errorf("store.min_pool_size (%d) exceeds store.max_pool_size (%d)", c.MinPoolSize, c.MaxPoolSize)
	}
	return nil
}

// ConnectionURI resolves the address to dial. An explicit URI wins, then the
// local development server, then an SRV address assembled from host and
// credentials.
func (c *Config) ConnectionURI() (string, error) {
	switch {
	case c.URI != "":
		return c.URI, nil
	case c.Dev:
		return localURI, nil
	case c.Host == "":
		return "", errors.New("store: one of uri, dev or host must be set")
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     c.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String(), nil
}
