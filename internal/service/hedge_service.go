package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// HedgeService orchestrates hedge scanning with result caching
type HedgeService struct {
	engine Engine
	cache  Cache
	logger zerolog.Logger
}

// NewHedgeService creates a new hedge service
func NewHedgeService(engine Engine, cache Cache, logger zerolog.Logger) *HedgeService {
	return &HedgeService{
		engine: engine,
		cache:  cache,
		logger: logger.With().Str("component", "hedge_service").Logger(),
	}
}

// ScanBatch runs the hedge pipeline over a quote batch and caches the retained
// opportunities plus the best pick per event. A nil best with a nil error means
// the scan ran and nothing met the efficiency bar.
func (s *HedgeService) ScanBatch(ctx context.Context, quotes []models.Quote) ([]models.HedgeOpportunity, *models.HedgeOpportunity, error) {
	if len(quotes) == 0 {
		return nil, nil, nil
	}

	opportunities, best := s.engine.Scan(quotes)

	if err := s.cache.SetBatch(ctx, opportunities); err != nil {
		s.logger.Warn().
			Err(err).
			Int("count", len(opportunities)).
			Msg("failed to cache opportunities")
		// Don't fail the scan on cache errors
	}

	if best != nil {
		if err := s.cache.SetBest(ctx, best); err != nil {
			s.logger.Warn().
				Err(err).
				Str("event", best.Event).
				Msg("failed to cache best opportunity")
		}

		s.logger.Info().
			Str("event", best.Event).
			Str("bonus_book", string(best.BonusBook)).
			Str("hedge_book", string(best.HedgeBook)).
			Str("hedge_stake", best.HedgeStake.String()).
			Str("profit", best.Profit.String()).
			Str("efficiency", best.Efficiency.String()).
			Msg("found hedge opportunity")
	} else {
		s.logger.Info().
			Int("quote_count", len(quotes)).
			Msg("no opportunity met the efficiency bar")
	}

	return opportunities, best, nil
}

// GetBestOpportunity retrieves the cached best opportunity for an event
func (s *HedgeService) GetBestOpportunity(ctx context.Context, event string) (*models.HedgeOpportunity, error) {
	opp, err := s.cache.GetBest(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("no opportunity cached for event=%s: %w", event, err)
	}

	s.logger.Debug().
		Str("event", event).
		Msg("cache hit for best opportunity")

	return opp, nil
}

// GetOpportunitiesByEvent retrieves all cached opportunities for an event
func (s *HedgeService) GetOpportunitiesByEvent(ctx context.Context, event string) ([]models.HedgeOpportunity, error) {
	opportunities, err := s.cache.GetByEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve opportunities for event: %w", err)
	}

	s.logger.Debug().
		Str("event", event).
		Int("count", len(opportunities)).
		Msg("retrieved opportunities by event")

	return opportunities, nil
}
