package service

import (
	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// Engine is an interface that abstracts the hedge scan pipeline
// This allows for easier testing and mocking
type Engine interface {
	Scan(quotes []models.Quote) ([]models.HedgeOpportunity, *models.HedgeOpportunity)
}
