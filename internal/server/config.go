package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override server settings,
// e.g. FINANCIAL_MODEL_ADDRESS or FINANCIAL_MODEL_STORE_BACKEND.
const EnvPrefix = "FINANCIAL_MODEL"

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address     string               `yaml:"address"`
	MaxBodySize string               `yaml:"maxBodySize"`
	Logging     config.LoggingConfig `yaml:"logging"`
	Store       config.StoreConfig   `yaml:"store"`

	bodySizeBytes int64
}

// envKeys are the settings that may come from the environment. The Redis
// password also honours the conventional REDIS_PASSWORD.
var envKeys = map[string][]string{
	"address":        nil,
	"maxbodysize":    nil,
	"logging.level":  nil,
	"logging.format": nil,
	"store.backend":  nil,
	"store.path":     nil,
	"store.address":  nil,
	"store.password": {"REDIS_PASSWORD"},
}

// LoadConfig reads the server configuration from a YAML file and the
// environment. A missing file leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetDefault("address", constants.DefaultServerAddress)

	for key, fallbacks := range envKeys {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, env}, fallbacks...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate resolves the body limit and rejects unknown store backends.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := parseByteSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = size

	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case "", constants.StoreBackendFile, constants.StoreBackendRedis, constants.StoreBackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown store backend %q", c.Store.Backend)
}

// BodySizeBytes returns the request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	if c.bodySizeBytes <= 0 {
		return constants.DefaultMaxBodySizeBytes
	}
	return c.bodySizeBytes
}

// byteUnits is ordered so that two-letter suffixes are tried before their
// one-letter forms.
var byteUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"G", 1 << 30},
	{"M", 1 << 20},
	{"K", 1 << 10},
	{"B", 1},
}

// parseByteSize reads sizes such as "4096", "256KB" or "2m". Units are
// binary and case-insensitive; an empty string is the default limit.
func parseByteSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	multiplier := int64(1)
	for _, unit := range byteUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			multiplier = unit.multiplier
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * multiplier, nil
}
