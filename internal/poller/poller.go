package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
	"github.com/cypherlabdev/hedge-finder-service/internal/normalizer"
	"github.com/cypherlabdev/hedge-finder-service/internal/service"
)

// OddsFetcher abstracts the odds-data provider client
type OddsFetcher interface {
	FetchOdds(ctx context.Context, sportKey, region string) ([]models.RawEvent, error)
}

// Poller periodically fetches odds from the provider, normalizes them, and
// scans the combined quote set for hedge opportunities
type Poller struct {
	fetcher    OddsFetcher
	normalizer *normalizer.Normalizer
	service    *service.HedgeService
	sportKeys  []string
	regions    []string
	interval   time.Duration
	logger     zerolog.Logger
}

// PollerConfig holds poller configuration
type PollerConfig struct {
	SportKeys []string      // provider sport keys, e.g. ["basketball_nba"]
	Regions   []string      // provider regions, e.g. ["us", "us2"]
	Interval  time.Duration // e.g., 5 * time.Minute
}

// NewPoller creates a new odds poller
func NewPoller(
	config PollerConfig,
	fetcher OddsFetcher,
	norm *normalizer.Normalizer,
	svc *service.HedgeService,
	logger zerolog.Logger,
) *Poller {
	return &Poller{
		fetcher:    fetcher,
		normalizer: norm,
		service:    svc,
		sportKeys:  config.SportKeys,
		regions:    config.Regions,
		interval:   config.Interval,
		logger:     logger.With().Str("component", "poller").Logger(),
	}
}

// Run starts the polling loop. It polls once immediately, then on every tick
// until the context is canceled.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info().
		Strs("sports", p.sportKeys).
		Strs("regions", p.regions).
		Dur("interval", p.interval).
		Msg("starting odds poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("stopping odds poller")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs one polling cycle: fetch every sport from every region,
// normalize the combined event set, and scan it as one batch.
func (p *Poller) pollOnce(ctx context.Context) {
	var events []models.RawEvent

	for _, sport := range p.sportKeys {
		for _, region := range p.regions {
			fetched, err := p.fetcher.FetchOdds(ctx, sport, region)
			if err != nil {
				p.logger.Error().
					Err(err).
					Str("sport", sport).
					Str("region", region).
					Msg("failed to fetch odds")
				continue
			}
			events = append(events, fetched...)
		}
	}

	if len(events) == 0 {
		p.logger.Debug().Msg("no events fetched this cycle")
		return
	}

	quotes := p.normalizer.Normalize(events)

	if _, _, err := p.service.ScanBatch(ctx, quotes); err != nil {
		p.logger.Error().Err(err).Msg("hedge scan failed")
		return
	}

	p.logger.Debug().
		Int("event_count", len(events)).
		Int("quote_count", len(quotes)).
		Msg("poll cycle complete")
}
