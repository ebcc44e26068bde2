package ops

import (
	"database/sql"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/errors"
)

// DeleteDeckInput contains parameters for the DeleteDeck operation.
type DeleteDeckInput struct {
	ID string `json:"id"`
}

// DeleteDeckOutput contains the result of the DeleteDeck operation.
type DeleteDeckOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// DeleteDeck removes a deck and all of its cards. The delete is hard;
// there is no recycle bin.
func DeleteDeck(database *sql.DB, input DeleteDeckInput) (*DeleteDeckOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := db.DeleteDeck(database, input.ID); err != nil {
		return nil, err
	}
	return &DeleteDeckOutput{ID: input.ID, Deleted: true}, nil
}
