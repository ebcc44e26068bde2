package ops

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func stringPtr(s string) *string {
	return &s
}

// mustCreate seeds a deck through the real operation and returns its ID.
func mustCreate(t *testing.T, database *sql.DB, title string, cards ...CardInput) string {
	t.Helper()
	out, err := CreateDeck(database, testConfig(), CreateDeckInput{
		Title: title,
		Cards: cards,
	})
	if err != nil {
		t.Fatalf("CreateDeck failed: %v", err)
	}
	return out.ID
}

// scheduleCard overwrites one card's review state directly.
func scheduleCard(t *testing.T, database *sql.DB, deckID, cardID string, status deck.Status, nextReview time.Time, interval int, ease float64) {
	t.Helper()
	d, err := db.GetDeck(database, deckID)
	if err != nil {
		t.Fatalf("GetDeck failed: %v", err)
	}
	c := d.FindCard(cardID)
	if c == nil {
		t.Fatalf("card %s not found in deck %s", cardID, deckID)
	}
	c.Status = status
	c.NextReview = nextReview
	c.Interval = interval
	c.EaseFactor = ease
	if err := db.ReplaceCard(database, deckID, *c); err != nil {
		t.Fatalf("ReplaceCard failed: %v", err)
	}
}
