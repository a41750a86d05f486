package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/pkg/hedge"
)

// Config holds all configuration for hedge-finder-service
type Config struct {
	Server   ServerConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Provider ProviderConfig
	Hedge    HedgeConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string // Topic to consume from (normalized_quotes)
	GroupID string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ProviderConfig holds odds-data provider configuration. The poller is enabled
// only when APIKey is set.
type ProviderConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	Sports       []string // short sport names, e.g. ["nba", "ncaab"]
	PollInterval time.Duration
}

// HedgeConfig holds hedge scan parameters
type HedgeConfig struct {
	Stake         float64  // bonus-leg stake, must be positive
	MinEfficiency float64  // inclusive threshold, may be negative or > 1
	BonusBook     string   // user-facing bonus bookmaker name
	Books         []string // user-facing hedge bookmaker names
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "normalized_quotes")
	v.SetDefault("kafka.group_id", "hedge-finder")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 15*time.Minute)

	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.sports", []string{"nba", "ncaab"})
	v.SetDefault("provider.poll_interval", 5*time.Minute)

	v.SetDefault("hedge.stake", 250.0)
	v.SetDefault("hedge.min_efficiency", 0.0)
	v.SetDefault("hedge.bonus_book", "fanduel")
	v.SetDefault("hedge.books", []string{"draftkings", "betmgm", "caesars"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("HEDGE_FINDER")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the pipeline-wide parameters before anything runs. A bad
// stake, threshold, or bookmaker name aborts startup; per-record problems are
// handled downstream.
func (c *Config) Validate() error {
	if c.Hedge.Stake <= 0 {
		return fmt.Errorf("%w: hedge.stake must be positive, got %v", hedge.ErrInvalidStake, c.Hedge.Stake)
	}

	if _, err := books.Resolve(c.Hedge.BonusBook); err != nil {
		return fmt.Errorf("hedge.bonus_book: %w", err)
	}

	if len(c.Hedge.Books) == 0 {
		return fmt.Errorf("hedge.books must name at least one hedge bookmaker")
	}
	if _, err := books.ResolveAll(c.Hedge.Books); err != nil {
		return fmt.Errorf("hedge.books: %w", err)
	}

	return nil
}

// ToParams converts config to hedge scan parameters
func (c *HedgeConfig) ToParams() (hedge.Params, error) {
	bonusBook, err := books.Resolve(c.BonusBook)
	if err != nil {
		return hedge.Params{}, fmt.Errorf("hedge.bonus_book: %w", err)
	}

	return hedge.Params{
		Stake:         decimal.NewFromFloat(c.Stake),
		MinEfficiency: decimal.NewFromFloat(c.MinEfficiency),
		BonusBook:     bonusBook,
	}, nil
}

// AllowedBooks resolves the hedge books plus the bonus book to canonical keys
func (c *HedgeConfig) AllowedBooks() ([]books.Book, error) {
	all, err := books.ResolveAll(append([]string{c.BonusBook}, c.Books...))
	if err != nil {
		return nil, err
	}
	return all, nil
}
