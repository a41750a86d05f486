package normalizer

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// ErrMalformedMarket is reported for a market whose outcome count is not
// exactly two. The offending market is skipped, never fatal to the run.
var ErrMalformedMarket = errors.New("malformed market: expected exactly 2 outcomes")

// MarketH2H is the only market key the normalizer consumes.
const MarketH2H = "h2h"

// Normalizer converts raw provider event records into canonical Quotes
type Normalizer struct {
	allowed map[books.Book]bool
	logger  zerolog.Logger
}

// New creates a normalizer that admits quotes only from the given bookmakers
// (hedge books plus the bonus book).
func New(allowed []books.Book, logger zerolog.Logger) *Normalizer {
	allowedSet := make(map[books.Book]bool, len(allowed))
	for _, b := range allowed {
		allowedSet[b] = true
	}

	return &Normalizer{
		allowed: allowedSet,
		logger:  logger.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize produces two Quotes per well-formed h2h market, one per outcome,
// each naming the other as its opposite. Bookmakers outside the allowed set are
// skipped silently; malformed markets are skipped with a warning.
func (n *Normalizer) Normalize(events []models.RawEvent) []models.Quote {
	var quotes []models.Quote
	skipped := 0

	for i := range events {
		event := events[i].Label()

		for _, bm := range events[i].Bookmakers {
			book := books.Book(bm.Key)
			if !n.allowed[book] {
				continue
			}

			for _, m := range bm.Markets {
				if m.Key != MarketH2H {
					continue
				}

				if len(m.Outcomes) != 2 {
					skipped++
					n.logger.Warn().
						Err(ErrMalformedMarket).
						Str("event", event).
						Str("book", bm.Key).
						Int("outcome_count", len(m.Outcomes)).
						Msg("skipping market")
					continue
				}

				a, b := m.Outcomes[0], m.Outcomes[1]
				quotes = append(quotes,
					models.Quote{
						Event:     event,
						Selection: a.Name,
						Opposite:  b.Name,
						Book:      book,
						Odds:      a.Price,
					},
					models.Quote{
						Event:     event,
						Selection: b.Name,
						Opposite:  a.Name,
						Book:      book,
						Odds:      b.Price,
					},
				)
			}
		}
	}

	n.logger.Debug().
		Int("event_count", len(events)).
		Int("quote_count", len(quotes)).
		Int("skipped_markets", skipped).
		Msg("normalized provider events")

	return quotes
}
