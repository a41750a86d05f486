package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// DefaultBaseURL is the odds-data provider's v4 API root.
const DefaultBaseURL = "https://api.the-odds-api.com/v4"

// SportKeys maps short sport names to provider sport keys.
var SportKeys = map[string]string{
	"nba":            "basketball_nba",
	"ncaab":          "basketball_ncaab",
	"ncaaf":          "americanfootball_ncaaf",
	"eurobasketball": "basketball_euroleague",
	"nfl":            "americanfootball_nfl",
	"mlb":            "baseball_mlb",
	"nhl":            "icehockey_nhl",
}

// Client fetches event odds from the odds-data provider
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientConfig holds odds provider client configuration
type ClientConfig struct {
	BaseURL string        // empty uses DefaultBaseURL
	APIKey  string
	Timeout time.Duration // e.g., 30 * time.Second
}

// NewClient creates a new odds provider client
func NewClient(config ClientConfig, logger zerolog.Logger) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "oddsapi_client").Logger(),
	}
}

// FetchOdds retrieves event records with h2h markets in American odds for one
// sport and one region.
func (c *Client) FetchOdds(ctx context.Context, sportKey, region string) ([]models.RawEvent, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, url.PathEscape(sportKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	q := req.URL.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", region)
	q.Set("markets", "h2h")
	q.Set("oddsFormat", "american")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching odds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("odds API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var events []models.RawEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.logger.Debug().
		Str("sport", sportKey).
		Str("region", region).
		Int("event_count", len(events)).
		Msg("fetched odds")

	return events, nil
}
