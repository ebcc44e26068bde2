package ops

import (
	"database/sql"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// UpdateDeckInput contains parameters for the UpdateDeck operation.
// Nil fields are left unchanged.
type UpdateDeckInput struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
}

// UpdateDeckOutput contains the result of the UpdateDeck operation.
type UpdateDeckOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// UpdateDeck changes a deck's title and/or category.
func UpdateDeck(database *sql.DB, input UpdateDeckInput) (*UpdateDeckOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.Title == nil && input.Category == nil {
		return nil, errors.NewInvalidRequest("nothing to update: provide title or category")
	}

	d, err := db.GetDeck(database, input.ID)
	if err != nil {
		return nil, err
	}

	title := d.Title
	if input.Title != nil {
		title = deck.NormalizeTitle(*input.Title)
		if title == "" {
			return nil, errors.NewInvalidRequest("title must not be blank")
		}
	}

	category := d.Category
	if input.Category != nil {
		category = deck.NormalizeTitle(*input.Category)
		if category == "" {
			return nil, errors.NewInvalidRequest("category must not be blank")
		}
	}

	if err := db.UpdateDeckMeta(database, input.ID, title, category); err != nil {
		return nil, err
	}

	return &UpdateDeckOutput{ID: input.ID, Title: title, Category: category}, nil
}
