package hedge

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
	"github.com/cypherlabdev/hedge-finder-service/internal/models"
	"github.com/cypherlabdev/hedge-finder-service/pkg/oddsmath"
)

// ErrInvalidStake is returned for a non-positive bonus stake. The stake is a
// pipeline-wide parameter, so this aborts the whole invocation before any
// matching work begins.
var ErrInvalidStake = errors.New("invalid stake")

// Params holds the parameters for a hedge scan
type Params struct {
	Stake         decimal.Decimal // bonus-leg stake, must be positive
	MinEfficiency decimal.Decimal // inclusive lower bound, may be negative or > 1
	BonusBook     books.Book      // bookmaker holding the bonus wager
}

// Engine finds and scores bonus hedge opportunities over a quote collection
type Engine struct {
	params Params
	logger zerolog.Logger
}

// New creates a new hedge engine. Stake validation happens here so a bad
// configuration fails before any quotes are processed.
func New(params Params, logger zerolog.Logger) (*Engine, error) {
	if !params.Stake.IsPositive() {
		return nil, fmt.Errorf("%w: must be positive, got %s", ErrInvalidStake, params.Stake)
	}

	return &Engine{
		params: params,
		logger: logger.With().Str("component", "hedge_engine").Logger(),
	}, nil
}

// Params returns the engine's scan parameters.
func (e *Engine) Params() Params {
	return e.params
}

// ComputeHedge computes the hedge stake that equalizes the two outcomes, the
// locked profit, and the efficiency (profit as a fraction of the bonus stake).
//
// The bonus leg is a true bonus bet: only net winnings, never the stake itself,
// are paid out on a win. The hedge leg is a normal wager whose stake is returned
// on a win. The two scenario expressions are asymmetric for that reason and must
// stay that way:
//
//	bonus side hits: stake*(dA-1) - hedgeStake
//	hedge side hits: hedgeStake*(dB-1)
//
// The reported profit is the smaller of the two, so it is realized regardless of
// which side wins.
func ComputeHedge(stake, bonusOdds, hedgeOdds decimal.Decimal) (hedgeStake, profit, efficiency decimal.Decimal, err error) {
	if !stake.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero,
			fmt.Errorf("%w: must be positive, got %s", ErrInvalidStake, stake)
	}

	dA, err := oddsmath.ToDecimalMultiplier(bonusOdds)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero,
			fmt.Errorf("bonus odds: %w", err)
	}

	dB, err := oddsmath.ToDecimalMultiplier(hedgeOdds)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero,
			fmt.Errorf("hedge odds: %w", err)
	}

	one := decimal.NewFromInt(1)
	bonusWinnings := stake.Mul(dA.Sub(one))

	hedgeStake = bonusWinnings.Div(dB)

	bonusScenario := bonusWinnings.Sub(hedgeStake)
	hedgeScenario := hedgeStake.Mul(dB.Sub(one))

	profit = bonusScenario
	if hedgeScenario.LessThan(profit) {
		profit = hedgeScenario
	}

	efficiency = profit.Div(stake)

	return hedgeStake, profit, efficiency, nil
}

// FindPairings produces every viable (bonus quote, hedge quote) pairing: same
// event, hedge quote priced on the bonus quote's opposite outcome, different
// bookmaker. Iteration order is stable: bonus candidates in input order, hedge
// partners in input order within each (event, selection) bucket. An empty result
// is a normal outcome, not a failure.
func (e *Engine) FindPairings(quotes []models.Quote) []models.Pairing {
	// Key quotes by (event, selection) to avoid rescanning the full collection
	// for every bonus candidate. Bucket order preserves input order.
	type sideKey struct {
		event     string
		selection string
	}
	index := make(map[sideKey][]models.Quote, len(quotes))
	for _, q := range quotes {
		key := sideKey{event: q.Event, selection: q.Selection}
		index[key] = append(index[key], q)
	}

	var pairings []models.Pairing

	for _, q := range quotes {
		if q.Book != e.params.BonusBook {
			continue
		}

		for _, r := range index[sideKey{event: q.Event, selection: q.Opposite}] {
			if r.Book == q.Book {
				continue
			}
			pairings = append(pairings, models.Pairing{Bonus: q, Hedge: r})
		}
	}

	e.logger.Debug().
		Int("quote_count", len(quotes)).
		Int("pairing_count", len(pairings)).
		Str("bonus_book", string(e.params.BonusBook)).
		Msg("built candidate pairings")

	return pairings
}

// ScoreAll scores every pairing and retains those meeting the minimum
// efficiency, in input order. A pairing whose odds fail conversion is skipped
// with a warning so one bad quote cannot abort the whole batch.
func (e *Engine) ScoreAll(pairings []models.Pairing) []models.HedgeOpportunity {
	opportunities := make([]models.HedgeOpportunity, 0, len(pairings))

	for _, p := range pairings {
		hedgeStake, profit, efficiency, err := ComputeHedge(e.params.Stake, p.Bonus.Odds, p.Hedge.Odds)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("event", p.Bonus.Event).
				Str("selection", p.Bonus.Selection).
				Str("hedge_book", string(p.Hedge.Book)).
				Msg("failed to score pairing")
			continue
		}

		if efficiency.LessThan(e.params.MinEfficiency) {
			continue
		}

		opportunities = append(opportunities, models.HedgeOpportunity{
			ID:         uuid.New(),
			Event:      p.Bonus.Event,
			Selection:  p.Bonus.Selection,
			Opposite:   p.Bonus.Opposite,
			BonusBook:  p.Bonus.Book,
			BonusOdds:  p.Bonus.Odds,
			HedgeBook:  p.Hedge.Book,
			HedgeOdds:  p.Hedge.Odds,
			HedgeStake: hedgeStake,
			Profit:     profit,
			Efficiency: efficiency,
			DetectedAt: time.Now().UTC(),
		})
	}

	return opportunities
}

// SelectBest scores the pairings and returns the single highest-efficiency
// opportunity. Ties go to the first-encountered pairing, so repeated runs over
// the same input pick the same opportunity. Returns false when nothing meets
// the efficiency bar; that is a legitimate empty result, not an error.
func (e *Engine) SelectBest(pairings []models.Pairing) (*models.HedgeOpportunity, bool) {
	return pickBest(e.ScoreAll(pairings))
}

// Scan runs the full pipeline over a quote collection: find pairings, score
// them, and select the best. Returns the retained opportunity list and the best
// pick. Each call is a stateless single-pass computation.
func (e *Engine) Scan(quotes []models.Quote) ([]models.HedgeOpportunity, *models.HedgeOpportunity) {
	pairings := e.FindPairings(quotes)
	opportunities := e.ScoreAll(pairings)
	best, ok := pickBest(opportunities)

	evt := e.logger.Info().
		Int("quote_count", len(quotes)).
		Int("pairing_count", len(pairings)).
		Int("opportunity_count", len(opportunities))
	if ok {
		evt = evt.
			Str("best_event", best.Event).
			Str("best_efficiency", best.Efficiency.String())
	}
	evt.Msg("hedge scan complete")

	return opportunities, best
}

// pickBest returns the opportunity with strictly greatest efficiency. A
// strictly-greater comparison keeps the first-encountered opportunity on ties.
func pickBest(opportunities []models.HedgeOpportunity) (*models.HedgeOpportunity, bool) {
	var best *models.HedgeOpportunity
	for i := range opportunities {
		if best == nil || opportunities[i].Efficiency.GreaterThan(best.Efficiency) {
			best = &opportunities[i]
		}
	}
	return best, best != nil
}
