package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// AddCardInput contains parameters for the AddCard operation.
type AddCardInput struct {
	DeckID string `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

// AddCardOutput contains the result of the AddCard operation.
type AddCardOutput struct {
	DeckID string    `json:"deck_id"`
	Card   deck.Card `json:"card"`
}

// AddCard appends a new card to a deck. The card starts unreviewed and
// immediately due.
func AddCard(database *sql.DB, input AddCardInput) (*AddCardOutput, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck_id is required")
	}
	if strings.TrimSpace(input.Front) == "" || strings.TrimSpace(input.Back) == "" {
		return nil, errors.NewInvalidRequest("front and back must both be non-blank")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	c := deck.NewCard(id, input.Front, input.Back, time.Now())
	if err := db.InsertCard(database, input.DeckID, c); err != nil {
		return nil, err
	}
	return &AddCardOutput{DeckID: input.DeckID, Card: c}, nil
}

// UpdateCardInput contains parameters for the UpdateCard operation.
// Nil fields are left unchanged; scheduling state is never editable here.
type UpdateCardInput struct {
	DeckID string  `json:"deck_id"`
	CardID string  `json:"card_id"`
	Front  *string `json:"front,omitempty"`
	Back   *string `json:"back,omitempty"`
}

// UpdateCardOutput contains the result of the UpdateCard operation.
type UpdateCardOutput struct {
	DeckID string    `json:"deck_id"`
	Card   deck.Card `json:"card"`
}

// UpdateCard edits a card's text faces. Review state is preserved.
func UpdateCard(database *sql.DB, input UpdateCardInput) (*UpdateCardOutput, error) {
	if input.DeckID == "" || input.CardID == "" {
		return nil, errors.NewInvalidRequest("deck_id and card_id are required")
	}
	if input.Front == nil && input.Back == nil {
		return nil, errors.NewInvalidRequest("nothing to update: provide front or back")
	}

	d, err := db.GetDeck(database, input.DeckID)
	if err != nil {
		return nil, err
	}
	c := d.FindCard(input.CardID)
	if c == nil {
		return nil, errors.NewCardNotFound(input.DeckID, input.CardID)
	}

	updated := *c
	if input.Front != nil {
		updated.Front = *input.Front
	}
	if input.Back != nil {
		updated.Back = *input.Back
	}

	if err := db.ReplaceCard(database, input.DeckID, updated); err != nil {
		return nil, err
	}
	return &UpdateCardOutput{DeckID: input.DeckID, Card: updated}, nil
}

// RemoveCardInput contains parameters for the RemoveCard operation.
type RemoveCardInput struct {
	DeckID string `json:"deck_id"`
	CardID string `json:"card_id"`
}

// RemoveCardOutput contains the result of the RemoveCard operation.
type RemoveCardOutput struct {
	DeckID  string `json:"deck_id"`
	CardID  string `json:"card_id"`
	Removed bool   `json:"removed"`
}

// RemoveCard deletes a single card from a deck.
func RemoveCard(database *sql.DB, input RemoveCardInput) (*RemoveCardOutput, error) {
	if input.DeckID == "" || input.CardID == "" {
		return nil, errors.NewInvalidRequest("deck_id and card_id are required")
	}

	if err := db.DeleteCard(database, input.DeckID, input.CardID); err != nil {
		return nil, err
	}
	return &RemoveCardOutput{DeckID: input.DeckID, CardID: input.CardID, Removed: true}, nil
}
