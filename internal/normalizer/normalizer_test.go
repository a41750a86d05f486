package normalizer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

func setupTestNormalizer(allowed ...books.Book) *Normalizer {
	return New(allowed, zerolog.Nop())
}

func rawEvent(away, home string, bookmakers ...models.RawBookmaker) models.RawEvent {
	return models.RawEvent{
		AwayTeam:   away,
		HomeTeam:   home,
		Bookmakers: bookmakers,
	}
}

func h2hBookmaker(key string, nameA string, priceA int64, nameB string, priceB int64) models.RawBookmaker {
	return models.RawBookmaker{
		Key: key,
		Markets: []models.RawMarket{
			{
				Key: MarketH2H,
				Outcomes: []models.RawOutcome{
					{Name: nameA, Price: decimal.NewFromInt(priceA)},
					{Name: nameB, Price: decimal.NewFromInt(priceB)},
				},
			},
		},
	}
}

// TestNormalize tests that each h2h market yields two quotes, one per outcome,
// each naming the other as its opposite
func TestNormalize(t *testing.T) {
	n := setupTestNormalizer(books.FanDuel)

	quotes := n.Normalize([]models.RawEvent{
		rawEvent("Celtics", "Knicks",
			h2hBookmaker("fanduel", "Celtics", 120, "Knicks", -140),
		),
	})

	require.Len(t, quotes, 2)

	assert.Equal(t, "Celtics @ Knicks", quotes[0].Event)
	assert.Equal(t, "Celtics", quotes[0].Selection)
	assert.Equal(t, "Knicks", quotes[0].Opposite)
	assert.Equal(t, books.FanDuel, quotes[0].Book)
	assert.True(t, quotes[0].Odds.Equal(decimal.NewFromInt(120)))

	assert.Equal(t, "Knicks", quotes[1].Selection)
	assert.Equal(t, "Celtics", quotes[1].Opposite)
	assert.True(t, quotes[1].Odds.Equal(decimal.NewFromInt(-140)))

	// Opposite fields must mirror each other's selections.
	assert.Equal(t, quotes[0].Selection, quotes[1].Opposite)
	assert.Equal(t, quotes[1].Selection, quotes[0].Opposite)
}

// TestNormalize_SkipsDisallowedBooks tests that bookmakers outside the allowed
// set are excluded
func TestNormalize_SkipsDisallowedBooks(t *testing.T) {
	n := setupTestNormalizer(books.FanDuel)

	quotes := n.Normalize([]models.RawEvent{
		rawEvent("Celtics", "Knicks",
			h2hBookmaker("fanduel", "Celtics", 120, "Knicks", -140),
			h2hBookmaker("bovada", "Celtics", 118, "Knicks", -138),
		),
	})

	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Equal(t, books.FanDuel, q.Book)
	}
}

// TestNormalize_SkipsMalformedMarket tests that a market with an outcome count
// other than two is skipped without aborting the batch
func TestNormalize_SkipsMalformedMarket(t *testing.T) {
	n := setupTestNormalizer(books.FanDuel, books.DraftKings)

	malformed := models.RawBookmaker{
		Key: "fanduel",
		Markets: []models.RawMarket{
			{
				Key: MarketH2H,
				Outcomes: []models.RawOutcome{
					{Name: "Celtics", Price: decimal.NewFromInt(120)},
					{Name: "Knicks", Price: decimal.NewFromInt(-140)},
					{Name: "Draw", Price: decimal.NewFromInt(900)},
				},
			},
		},
	}

	quotes := n.Normalize([]models.RawEvent{
		rawEvent("Celtics", "Knicks",
			malformed,
			h2hBookmaker("draftkings", "Celtics", 115, "Knicks", -150),
		),
	})

	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Equal(t, books.DraftKings, q.Book)
	}
}

// TestNormalize_SkipsNonH2HMarkets tests that only h2h markets are consumed
func TestNormalize_SkipsNonH2HMarkets(t *testing.T) {
	n := setupTestNormalizer(books.FanDuel)

	quotes := n.Normalize([]models.RawEvent{
		rawEvent("Celtics", "Knicks",
			models.RawBookmaker{
				Key: "fanduel",
				Markets: []models.RawMarket{
					{
						Key: "spreads",
						Outcomes: []models.RawOutcome{
							{Name: "Celtics", Price: decimal.NewFromInt(-110)},
							{Name: "Knicks", Price: decimal.NewFromInt(-110)},
						},
					},
				},
			},
		),
	})

	assert.Empty(t, quotes)
}

// TestNormalize_EmptyInput tests normalization of an empty event list
func TestNormalize_EmptyInput(t *testing.T) {
	n := setupTestNormalizer(books.FanDuel)
	assert.Empty(t, n.Normalize(nil))
}
