package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oddsResponse = `[
  {
    "home_team": "New York Knicks",
    "away_team": "Boston Celtics",
    "bookmakers": [
      {
        "key": "fanduel",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Boston Celtics", "price": 120},
              {"name": "New York Knicks", "price": -140}
            ]
          }
        ]
      }
    ]
  }
]`

// TestFetchOdds tests a successful odds fetch
func TestFetchOdds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball_nba/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "us", r.URL.Query().Get("regions"))
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oddsResponse))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())

	events, err := client.FetchOdds(context.Background(), "basketball_nba", "us")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Boston Celtics @ New York Knicks", events[0].Label())

	require.Len(t, events[0].Bookmakers, 1)
	require.Len(t, events[0].Bookmakers[0].Markets, 1)

	outcomes := events[0].Bookmakers[0].Markets[0].Outcomes
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, outcomes[1].Price.Equal(decimal.NewFromInt(-140)))
}

// TestFetchOdds_NonOKStatus tests error handling for provider failures
func TestFetchOdds_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "bad-key",
	}, zerolog.Nop())

	events, err := client.FetchOdds(context.Background(), "basketball_nba", "us")

	assert.Error(t, err)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "status=401")
}

// TestFetchOdds_ContextCanceled tests that a canceled context aborts the fetch
func TestFetchOdds_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchOdds(ctx, "basketball_nba", "us")
	assert.Error(t, err)
}

// TestFetchOdds_MalformedBody tests error handling for undecodable responses
func TestFetchOdds_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, zerolog.Nop())

	_, err := client.FetchOdds(context.Background(), "basketball_nba", "us")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
