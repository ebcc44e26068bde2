package ops

import (
	"database/sql"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/session"
)

// FetchDeckInput contains parameters for the FetchDeck operation.
type FetchDeckInput struct {
	ID           string `json:"id"`
	IncludeCards bool   `json:"include_cards"`
}

// FetchDeckOutput contains the result of the FetchDeck operation.
type FetchDeckOutput struct {
	deck.Deck
	CardCount int `json:"card_count"`
	DueCount  int `json:"due_count"`
	Invalid   int `json:"invalid"`
}

// FetchDeck retrieves a deck by ID, with due/invalid tallies computed
// against the current clock.
func FetchDeck(database *sql.DB, input FetchDeckInput) (*FetchDeckOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	d, err := db.GetDeck(database, input.ID)
	if err != nil {
		return nil, err
	}

	sel := session.Build(d, time.Now())

	out := &FetchDeckOutput{
		Deck:      *d,
		CardCount: len(d.Cards),
		DueCount:  len(sel.Queue),
		Invalid:   sel.Invalid,
	}
	if !input.IncludeCards {
		out.Cards = nil
	}
	return out, nil
}
