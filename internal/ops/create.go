package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// CreateDeckInput contains parameters for the CreateDeck operation.
type CreateDeckInput struct {
	Title    string      `json:"title"`
	Category string      `json:"category,omitempty"`
	Cards    []CardInput `json:"cards,omitempty"`
}

// CreateDeckOutput contains the result of the CreateDeck operation.
type CreateDeckOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	CardCount int    `json:"card_count"`
	Dropped   int    `json:"dropped"` // cards blank on both sides, not saved
}

// CreateDeck creates a deck with an optional initial card collection.
// Cards blank on both sides are dropped, matching the editor's save
// behavior; cards with one blank side are kept (they are editable later,
// just excluded from study).
func CreateDeck(database *sql.DB, cfg *config.Config, input CreateDeckInput) (*CreateDeckOutput, error) {
	title := deck.NormalizeTitle(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	category := deck.NormalizeTitle(input.Category)
	if category == "" {
		category = cfg.DefaultCategory
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now()
	d := &deck.Deck{
		ID:        id,
		Title:     title,
		Category:  category,
		CreatedAt: now,
	}

	var dropped int
	for _, in := range input.Cards {
		if strings.TrimSpace(in.Front) == "" && strings.TrimSpace(in.Back) == "" {
			dropped++
			continue
		}
		cardID, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		d.Cards = append(d.Cards, deck.NewCard(cardID, in.Front, in.Back, now))
	}

	if err := db.InsertDeck(database, d); err != nil {
		return nil, err
	}

	return &CreateDeckOutput{
		ID:        d.ID,
		Title:     d.Title,
		Category:  d.Category,
		CardCount: len(d.Cards),
		Dropped:   dropped,
	}, nil
}
