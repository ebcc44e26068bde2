package ops

import (
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
)

func TestListDecks_Empty(t *testing.T) {
	database := setupDB(t)

	out, err := ListDecks(database)
	if err != nil {
		t.Fatalf("ListDecks failed: %v", err)
	}
	if out.Total != 0 || len(out.Decks) != 0 {
		t.Errorf("expected empty list, got %+v", out)
	}
}

func TestListDecks_NewestFirstWithCounts(t *testing.T) {
	database := setupDB(t)
	first := mustCreate(t, database, "First", CardInput{Front: "q", Back: "a"})
	time.Sleep(2 * time.Millisecond) // distinct created_at timestamps
	second := mustCreate(t, database, "Second",
		CardInput{Front: "q1", Back: "a1"},
		CardInput{Front: "q2", Back: "a2"},
	)

	// Push the first deck's only card into the future so its due count drops.
	d, err := db.GetDeck(database, first)
	if err != nil {
		t.Fatalf("GetDeck failed: %v", err)
	}
	scheduleCard(t, database, first, d.Cards[0].ID,
		deck.StatusReview, time.Now().Add(72*time.Hour), 3, 2.65)

	out, err := ListDecks(database)
	if err != nil {
		t.Fatalf("ListDecks failed: %v", err)
	}
	if out.Total != 2 {
		t.Fatalf("Total = %d, want 2", out.Total)
	}
	if out.Decks[0].ID != second || out.Decks[1].ID != first {
		t.Errorf("order = %s, %s; want newest first", out.Decks[0].ID, out.Decks[1].ID)
	}
	if out.Decks[0].CardCount != 2 || out.Decks[0].DueCount != 2 {
		t.Errorf("second deck counts = %d/%d, want 2/2", out.Decks[0].CardCount, out.Decks[0].DueCount)
	}
	if out.Decks[1].CardCount != 1 || out.Decks[1].DueCount != 0 {
		t.Errorf("first deck counts = %d/%d, want 1/0", out.Decks[1].CardCount, out.Decks[1].DueCount)
	}
}
