// Package constants provides shared constants for the financial-model application.
package constants

// Projection horizon
const (
	// HorizonYears is the number of yearly columns in every projected series.
	HorizonYears = 14

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day count used for ad impression revenue
	DaysPerYear = 365
)

// Model constants
const (
	// InvestmentProfitFloor is the profit level that discretionary space-system
	// investment may never push a year below.
	InvestmentProfitFloor = 5_000_000.0

	// MonthlyRecurrencyRate is the share of last year's MAU assumed to return.
	MonthlyRecurrencyRate = 0.4

	// DefaultScale is the value every missing or invalid scale parameter takes.
	DefaultScale = 1.0

	// MaxScale caps scale parameters so every projected value stays finite.
	MaxScale = 1_000_000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the indented JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Scenario store defaults
const (
	// StoreBackendFile keeps one JSON document per scenario on disk.
	StoreBackendFile = "file"

	// StoreBackendRedis keeps scenario documents in Redis.
	StoreBackendRedis = "redis"

	// StoreBackendSQLite keeps scenario documents in a SQLite table.
	StoreBackendSQLite = "sqlite"

	// DefaultStorePath is the scenario directory for the file backend.
	DefaultStorePath = "data/scenarios"

	// DefaultSQLitePath is the database file for the sqlite backend.
	DefaultSQLitePath = "data/scenarios.db"

	// DefaultRedisAddress is the Redis address used when none is configured.
	DefaultRedisAddress = "localhost:6379"

	// DefaultRedisKeyPrefix namespaces scenario keys in Redis.
	DefaultRedisKeyPrefix = "scenario:"

	// MaxScenarioNameLength bounds scenario names accepted by the store.
	MaxScenarioNameLength = 128
)

// Validation constants
const (
	// ToleranceForComparison is the tolerance for financial comparisons
	ToleranceForComparison = 1.0
)
