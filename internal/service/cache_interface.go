package service

import (
	"context"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, opp *models.HedgeOpportunity) error
	SetBatch(ctx context.Context, opportunities []models.HedgeOpportunity) error
	SetBest(ctx context.Context, opp *models.HedgeOpportunity) error
	GetBest(ctx context.Context, event string) (*models.HedgeOpportunity, error)
	GetByEvent(ctx context.Context, event string) ([]models.HedgeOpportunity, error)
	Ping(ctx context.Context) error
	Close() error
}
