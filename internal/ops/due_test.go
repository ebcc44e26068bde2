package ops

import (
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

func TestDueInfo_DueCards(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck",
		CardInput{Front: "q1", Back: "a1"},
		CardInput{Front: "q2", Back: "a2"},
	)

	out, err := DueInfo(database, DueInfoInput{ID: id})
	if err != nil {
		t.Fatalf("DueInfo failed: %v", err)
	}
	if out.DueCount != 2 || out.CardCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", out.DueCount, out.CardCount)
	}
	if out.NextDue != nil {
		t.Error("NextDue should be nil while cards are due")
	}
}

func TestDueInfo_NothingDueReportsNextReview(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck",
		CardInput{Front: "q1", Back: "a1"},
		CardInput{Front: "q2", Back: "a2"},
	)

	d, err := db.GetDeck(database, id)
	if err != nil {
		t.Fatalf("GetDeck failed: %v", err)
	}
	sooner := time.Now().Add(24 * time.Hour).Truncate(time.Millisecond)
	later := time.Now().Add(96 * time.Hour).Truncate(time.Millisecond)
	scheduleCard(t, database, id, d.Cards[0].ID, deck.StatusReview, later, 4, 2.5)
	scheduleCard(t, database, id, d.Cards[1].ID, deck.StatusReview, sooner, 1, 2.35)

	out, err := DueInfo(database, DueInfoInput{ID: id})
	if err != nil {
		t.Fatalf("DueInfo failed: %v", err)
	}
	if out.DueCount != 0 {
		t.Fatalf("DueCount = %d, want 0", out.DueCount)
	}
	if out.NextDue == nil {
		t.Fatal("NextDue should be set when nothing is due")
	}
	if !out.NextDue.Equal(sooner) {
		t.Errorf("NextDue = %v, want %v", out.NextDue, sooner)
	}
}

func TestDueInfo_NotFound(t *testing.T) {
	database := setupDB(t)

	_, err := DueInfo(database, DueInfoInput{ID: "missing"})
	if !errors.Is(err, errors.ErrDeckNotFound) {
		t.Errorf("DueInfo should be ErrDeckNotFound, got: %v", err)
	}
}
