package books

import (
	"errors"
	"fmt"
	"strings"
)

// Book is a canonical bookmaker key as used by the odds-data provider. Distinct
// keys always denote distinct bookmakers; user-facing spellings are resolved to
// this closed set at the boundary so the engine never sees an open string space.
type Book string

const (
	FanDuel       Book = "fanduel"
	DraftKings    Book = "draftkings"
	WilliamHillUS Book = "williamhill_us"
	BetRivers     Book = "betrivers"
	Fanatics      Book = "fanatics"
	BetMGM        Book = "betmgm"
	BallyBet      Book = "ballybet"
	ESPNBet       Book = "espnbet"
	BetPARX       Book = "betparx"
	Fliff         Book = "fliff"
	HardRockBet   Book = "hardrockbet"
)

// ErrUnknownBook is returned when a user-facing name has no canonical key.
var ErrUnknownBook = errors.New("unknown bookmaker")

// aliases maps user-facing bookmaker names to canonical provider keys.
var aliases = map[string]Book{
	// us
	"fanduel":    FanDuel,
	"draftkings": DraftKings,
	"caesars":    WilliamHillUS,
	"betrivers":  BetRivers,
	"fanatics":   Fanatics,
	"betmgm":     BetMGM,

	// us2
	"ballybet":    BallyBet,
	"espnbet":     ESPNBet,
	"betparx":     BetPARX,
	"fliff":       Fliff,
	"hardrockbet": HardRockBet,
}

// usBooks and us2Books partition the canonical keys by provider region.
var usBooks = map[Book]bool{
	FanDuel:       true,
	DraftKings:    true,
	WilliamHillUS: true,
	BetRivers:     true,
	Fanatics:      true,
	BetMGM:        true,
}

var us2Books = map[Book]bool{
	BallyBet:    true,
	ESPNBet:     true,
	BetPARX:     true,
	Fliff:       true,
	HardRockBet: true,
}

// Resolve maps a user-facing bookmaker name to its canonical key.
// Matching is case-insensitive and ignores surrounding whitespace.
func Resolve(name string) (Book, error) {
	book, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBook, name)
	}
	return book, nil
}

// ResolveAll maps a list of user-facing names to canonical keys, deduplicated,
// preserving first-encountered order.
func ResolveAll(names []string) ([]Book, error) {
	seen := make(map[Book]bool, len(names))
	resolved := make([]Book, 0, len(names))

	for _, name := range names {
		book, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		if seen[book] {
			continue
		}
		seen[book] = true
		resolved = append(resolved, book)
	}

	return resolved, nil
}

// RegionsFor determines which provider region(s) must be queried to cover the
// given books. Falls back to "us" when no book maps to a known region.
func RegionsFor(all []Book) []string {
	var needUS, needUS2 bool
	for _, b := range all {
		if usBooks[b] {
			needUS = true
		}
		if us2Books[b] {
			needUS2 = true
		}
	}

	var regions []string
	if needUS {
		regions = append(regions, "us")
	}
	if needUS2 {
		regions = append(regions, "us2")
	}
	if len(regions) == 0 {
		regions = []string{"us"}
	}
	return regions
}
