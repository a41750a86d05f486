package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/pkg/hedge"
)

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	// Load config without a file (should use defaults)
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)

	// Verify Kafka defaults
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "normalized_quotes", config.Kafka.Topic)
	assert.Equal(t, "hedge-finder", config.Kafka.GroupID)

	// Verify Redis defaults
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, "", config.Redis.Password)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 15*time.Minute, config.Redis.TTL)

	// Verify provider defaults
	assert.Equal(t, "", config.Provider.APIKey)
	assert.Equal(t, 30*time.Second, config.Provider.Timeout)
	assert.Equal(t, []string{"nba", "ncaab"}, config.Provider.Sports)
	assert.Equal(t, 5*time.Minute, config.Provider.PollInterval)

	// Verify hedge defaults
	assert.Equal(t, 250.0, config.Hedge.Stake)
	assert.Equal(t, 0.0, config.Hedge.MinEfficiency)
	assert.Equal(t, "fanduel", config.Hedge.BonusBook)
	assert.Equal(t, []string{"draftkings", "betmgm", "caesars"}, config.Hedge.Books)

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	// Create temporary config file
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	configContent := `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s

kafka:
  brokers:
    - broker1:9092
    - broker2:9092
  topic: test_topic
  group_id: test_group

redis:
  addr: redis:6379
  password: test_password
  db: 1
  ttl: 30m

provider:
  api_key: test-key
  timeout: 10s
  sports:
    - nba
  poll_interval: 2m

hedge:
  stake: 500
  min_efficiency: 0.55
  bonus_book: caesars
  books:
    - fanduel
    - fliff

logging:
  level: debug
  format: console
`

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	tmpFile.Close()

	// Load config from file
	config, err := LoadConfig(tmpFile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server config
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, config.Server.WriteTimeout)

	// Verify Kafka config
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_topic", config.Kafka.Topic)
	assert.Equal(t, "test_group", config.Kafka.GroupID)

	// Verify Redis config
	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "test_password", config.Redis.Password)
	assert.Equal(t, 1, config.Redis.DB)
	assert.Equal(t, 30*time.Minute, config.Redis.TTL)

	// Verify provider config
	assert.Equal(t, "test-key", config.Provider.APIKey)
	assert.Equal(t, 10*time.Second, config.Provider.Timeout)
	assert.Equal(t, []string{"nba"}, config.Provider.Sports)
	assert.Equal(t, 2*time.Minute, config.Provider.PollInterval)

	// Verify hedge config
	assert.Equal(t, 500.0, config.Hedge.Stake)
	assert.Equal(t, 0.55, config.Hedge.MinEfficiency)
	assert.Equal(t, "caesars", config.Hedge.BonusBook)
	assert.Equal(t, []string{"fanduel", "fliff"}, config.Hedge.Books)

	// Verify logging config
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_InvalidFile tests loading with non-existent file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestValidate_InvalidStake tests that a non-positive stake fails validation
func TestValidate_InvalidStake(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	config.Hedge.Stake = 0

	err = config.Validate()
	assert.ErrorIs(t, err, hedge.ErrInvalidStake)
}

// TestValidate_UnknownBonusBook tests that an unresolvable bonus book fails
// validation
func TestValidate_UnknownBonusBook(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	config.Hedge.BonusBook = "bovada"

	err = config.Validate()
	assert.ErrorIs(t, err, books.ErrUnknownBook)
}

// TestValidate_EmptyHedgeBooks tests that an empty hedge book list fails
// validation
func TestValidate_EmptyHedgeBooks(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	config.Hedge.Books = nil

	err = config.Validate()
	assert.Error(t, err)
}

// TestToParams tests conversion of hedge config to engine parameters
func TestToParams(t *testing.T) {
	cfg := HedgeConfig{
		Stake:         250,
		MinEfficiency: 0.4,
		BonusBook:     "caesars",
		Books:         []string{"fanduel"},
	}

	params, err := cfg.ToParams()

	require.NoError(t, err)
	assert.True(t, params.Stake.Equal(decimal.NewFromInt(250)))
	assert.True(t, params.MinEfficiency.Equal(decimal.NewFromFloat(0.4)))
	assert.Equal(t, books.WilliamHillUS, params.BonusBook)
}

// TestAllowedBooks tests that the allowed set is the hedge books plus the
// bonus book, deduplicated
func TestAllowedBooks(t *testing.T) {
	cfg := HedgeConfig{
		Stake:     250,
		BonusBook: "fanduel",
		Books:     []string{"draftkings", "fanduel", "fliff"},
	}

	allowed, err := cfg.AllowedBooks()

	require.NoError(t, err)
	assert.Equal(t, []books.Book{books.FanDuel, books.DraftKings, books.Fliff}, allowed)
}
