package session

import (
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/deck"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func card(id string, status deck.Status, nextReview time.Time) deck.Card {
	return deck.Card{
		ID:         id,
		Front:      "front " + id,
		Back:       "back " + id,
		Status:     status,
		NextReview: nextReview,
		EaseFactor: deck.InitialEase,
	}
}

func TestBuild_NilDeck(t *testing.T) {
	sel := Build(nil, testNow)

	if sel.Reason != ReasonDeckNotFound {
		t.Errorf("Reason = %v, want %v", sel.Reason, ReasonDeckNotFound)
	}
}

func TestBuild_NilAndEmptyCards(t *testing.T) {
	sel := Build(&deck.Deck{ID: "d", Cards: nil}, testNow)
	if sel.Reason != ReasonNoCards {
		t.Errorf("nil cards: Reason = %v, want %v", sel.Reason, ReasonNoCards)
	}

	sel = Build(&deck.Deck{ID: "d", Cards: []deck.Card{}}, testNow)
	if sel.Reason != ReasonNoCards {
		t.Errorf("empty cards: Reason = %v, want %v", sel.Reason, ReasonNoCards)
	}
}

func TestBuild_FiltersInvalidCards(t *testing.T) {
	d := &deck.Deck{
		ID: "d",
		Cards: []deck.Card{
			card("ok", deck.StatusNew, testNow),
			{ID: "", Front: "f", Back: "b", NextReview: testNow},
			{ID: "blankfront", Front: "  ", Back: "b", NextReview: testNow},
		},
	}

	sel := Build(d, testNow)

	if sel.Invalid != 2 {
		t.Errorf("Invalid = %d, want 2", sel.Invalid)
	}
	if len(sel.Queue) != 1 || sel.Queue[0].ID != "ok" {
		t.Errorf("Queue = %v, want only card ok", sel.Queue)
	}
}

func TestBuild_DueSelection(t *testing.T) {
	d := &deck.Deck{
		ID: "d",
		Cards: []deck.Card{
			card("future", deck.StatusReview, testNow.Add(time.Hour)),
			card("past", deck.StatusReview, testNow.Add(-time.Hour)),
			card("exact", deck.StatusReview, testNow),
			card("newfuture", deck.StatusNew, testNow.Add(time.Hour)),
		},
	}

	sel := Build(d, testNow)

	got := make(map[string]bool)
	for _, c := range sel.Queue {
		got[c.ID] = true
	}
	if got["future"] {
		t.Error("card with future NextReview should not be queued")
	}
	if !got["past"] || !got["exact"] {
		t.Error("past and exactly-now cards should be queued")
	}
	if !got["newfuture"] {
		t.Error("new cards are always due, even with future NextReview")
	}
}

func TestBuild_OrderedByNextReviewStable(t *testing.T) {
	d := &deck.Deck{
		ID: "d",
		Cards: []deck.Card{
			card("c", deck.StatusReview, testNow.Add(-time.Hour)),
			card("a", deck.StatusReview, testNow.Add(-3*time.Hour)),
			card("tie1", deck.StatusReview, testNow.Add(-2*time.Hour)),
			card("tie2", deck.StatusReview, testNow.Add(-2*time.Hour)),
		},
	}

	sel := Build(d, testNow)

	want := []string{"a", "tie1", "tie2", "c"}
	if len(sel.Queue) != len(want) {
		t.Fatalf("queue length = %d, want %d", len(sel.Queue), len(want))
	}
	for i, id := range want {
		if sel.Queue[i].ID != id {
			t.Errorf("Queue[%d] = %q, want %q", i, sel.Queue[i].ID, id)
		}
	}
}

func TestBuild_NothingDue(t *testing.T) {
	d := &deck.Deck{
		ID: "d",
		Cards: []deck.Card{
			card("future", deck.StatusReview, testNow.Add(time.Hour)),
			{ID: "bad", Front: "", Back: "b", NextReview: testNow},
		},
	}

	sel := Build(d, testNow)

	if sel.Reason != ReasonNothingDue {
		t.Errorf("Reason = %v, want %v", sel.Reason, ReasonNothingDue)
	}
	if sel.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", sel.Invalid)
	}
}

func TestBuild_QueueIsSnapshot(t *testing.T) {
	d := &deck.Deck{
		ID:    "d",
		Cards: []deck.Card{card("a", deck.StatusNew, testNow)},
	}

	sel := Build(d, testNow)
	d.Cards[0].Front = "mutated"

	if sel.Queue[0].Front != "front a" {
		t.Errorf("queue card front = %q, want snapshot %q", sel.Queue[0].Front, "front a")
	}
}
