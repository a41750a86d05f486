package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/hedge-finder-service/internal/books"
)

// Quote represents one priced side of a two-outcome market at one bookmaker.
// Quotes are immutable once constructed; the engine never edits odds in place.
type Quote struct {
	Event     string          `json:"event"`     // e.g. "Celtics @ Knicks"
	Selection string          `json:"selection"` // outcome this quote prices
	Opposite  string          `json:"opposite"`  // the complementary outcome
	Book      books.Book      `json:"book"`      // canonical bookmaker key
	Odds      decimal.Decimal `json:"odds"`      // American-format price, nonzero
}

// Pairing is a candidate (bonus quote, hedge quote) combination eligible for
// scoring. The hedge quote always covers the bonus quote's opposite outcome at a
// different bookmaker.
type Pairing struct {
	Bonus Quote `json:"bonus"`
	Hedge Quote `json:"hedge"`
}

// HedgeOpportunity is a scored pairing: the hedge stake that equalizes the two
// outcomes, the locked profit, and profit as a fraction of the bonus stake.
type HedgeOpportunity struct {
	ID         uuid.UUID       `json:"id"`
	Event      string          `json:"event"`
	Selection  string          `json:"selection"` // bonus-leg outcome
	Opposite   string          `json:"opposite"`  // hedge-leg outcome
	BonusBook  books.Book      `json:"bonus_book"`
	BonusOdds  decimal.Decimal `json:"bonus_odds"`
	HedgeBook  books.Book      `json:"hedge_book"`
	HedgeOdds  decimal.Decimal `json:"hedge_odds"`
	HedgeStake decimal.Decimal `json:"hedge_stake"`
	Profit     decimal.Decimal `json:"profit"`
	Efficiency decimal.Decimal `json:"efficiency"`
	DetectedAt time.Time       `json:"detected_at"`
}

// RawOutcome is one priced outcome inside a provider market.
type RawOutcome struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// RawMarket is one market as returned by the odds-data provider. A well-formed
// h2h market carries exactly two outcomes.
type RawMarket struct {
	Key      string       `json:"key"`
	Outcomes []RawOutcome `json:"outcomes"`
}

// RawBookmaker is one bookmaker entry inside a provider event record.
type RawBookmaker struct {
	Key     string      `json:"key"`
	Markets []RawMarket `json:"markets"`
}

// RawEvent is one event record from the odds-data provider.
type RawEvent struct {
	HomeTeam   string         `json:"home_team"`
	AwayTeam   string         `json:"away_team"`
	Bookmakers []RawBookmaker `json:"bookmakers"`
}

// Label returns the event identifier used throughout the pipeline.
func (e *RawEvent) Label() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}

// QuoteBatchMessage represents the Kafka message carrying a batch of normalized
// quotes from upstream.
type QuoteBatchMessage struct {
	Quotes    []Quote   `json:"quotes"`
	Timestamp time.Time `json:"timestamp"`
	BatchID   string    `json:"batch_id"`
}
