// Package ops implements the operations shared by the CLI and MCP
// surfaces: deck CRUD, card editing, import/export and study sessions.
package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/session"
)

// CardInput is a front/back pair supplied by the user or an import feed.
type CardInput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// deckStore adapts the database to the session.Store collaborator.
type deckStore struct {
	db *sql.DB
}

// NewStore wraps the database as a session store.
func NewStore(database *sql.DB) session.Store {
	return deckStore{db: database}
}

func (s deckStore) GetDeck(id string) (*deck.Deck, error) {
	return db.GetDeck(s.db, id)
}

func (s deckStore) ReplaceCard(deckID string, c deck.Card) error {
	return db.ReplaceCard(s.db, deckID, c)
}

func (s deckStore) TouchLastStudied(deckID string, at time.Time) error {
	return db.TouchLastStudied(s.db, deckID, at)
}
