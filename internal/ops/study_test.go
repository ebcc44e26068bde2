package ops

import (
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/session"
)

func TestStartStudy_FirstCardFrontOnly(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck",
		CardInput{Front: "q1", Back: "a1"},
		CardInput{Front: "q2", Back: "a2"},
	)
	mgr := session.NewManager(NewStore(database), nil)

	state, err := StartStudy(mgr, StartStudyInput{DeckID: id})
	if err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	if state.State != "active" {
		t.Fatalf("State = %q, want active", state.State)
	}
	if state.Index != 1 || state.Total != 2 {
		t.Errorf("progress = %d/%d, want 1/2", state.Index, state.Total)
	}
	if state.Front == "" {
		t.Error("Front should be shown")
	}
	if state.Back != "" {
		t.Error("Back must stay hidden until reveal")
	}
}

func TestRevealStudy_ShowsBack(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})
	mgr := session.NewManager(NewStore(database), nil)

	if _, err := StartStudy(mgr, StartStudyInput{DeckID: id}); err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	state, err := RevealStudy(mgr, RevealStudyInput{DeckID: id})
	if err != nil {
		t.Fatalf("RevealStudy failed: %v", err)
	}
	if !state.Revealed || state.Back != "a" {
		t.Errorf("state = %+v, want revealed with back", state)
	}
}

func TestAnswerStudy_AdvancesAndFinishes(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})
	mgr := session.NewManager(NewStore(database), nil)

	if _, err := StartStudy(mgr, StartStudyInput{DeckID: id}); err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	if _, err := RevealStudy(mgr, RevealStudyInput{DeckID: id}); err != nil {
		t.Fatalf("RevealStudy failed: %v", err)
	}
	state, err := AnswerStudy(mgr, AnswerStudyInput{DeckID: id, Rating: "easy"})
	if err != nil {
		t.Fatalf("AnswerStudy failed: %v", err)
	}
	if state.State != "finished" {
		t.Errorf("State = %q, want finished", state.State)
	}

	// The easy answer must have been persisted.
	deckOut, err := FetchDeck(database, FetchDeckInput{ID: id, IncludeCards: true})
	if err != nil {
		t.Fatalf("FetchDeck failed: %v", err)
	}
	if deckOut.Cards[0].Interval != 3 {
		t.Errorf("Interval = %d, want 3 after easy first answer", deckOut.Cards[0].Interval)
	}
	if deckOut.LastStudied == nil {
		t.Error("LastStudied should be stamped")
	}
}

func TestAnswerStudy_RequiresReveal(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})
	mgr := session.NewManager(NewStore(database), nil)

	if _, err := StartStudy(mgr, StartStudyInput{DeckID: id}); err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	_, err := AnswerStudy(mgr, AnswerStudyInput{DeckID: id, Rating: "easy"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("answer before reveal should be ErrInvalidRequest, got: %v", err)
	}
}

func TestAnswerStudy_InvalidRating(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})
	mgr := session.NewManager(NewStore(database), nil)

	if _, err := StartStudy(mgr, StartStudyInput{DeckID: id}); err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	_, err := AnswerStudy(mgr, AnswerStudyInput{DeckID: id, Rating: "brutal"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("unknown rating should be ErrInvalidRequest, got: %v", err)
	}
}

func TestStudyStatus_NoSession(t *testing.T) {
	database := setupDB(t)
	mgr := session.NewManager(NewStore(database), nil)

	_, err := StudyStatus(mgr, StudyStatusInput{DeckID: "nope"})
	if !errors.Is(err, errors.ErrNoSession) {
		t.Errorf("StudyStatus should be ErrNoSession, got: %v", err)
	}
}

func TestStartStudy_NothingDueFinishesImmediately(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})
	mgr := session.NewManager(NewStore(database), nil)

	d, err := db.GetDeck(database, id)
	if err != nil {
		t.Fatalf("GetDeck failed: %v", err)
	}
	scheduleCard(t, database, id, d.Cards[0].ID,
		deck.StatusReview, time.Now().Add(24*time.Hour), 1, 2.35)

	state, err := StartStudy(mgr, StartStudyInput{DeckID: id})
	if err != nil {
		t.Fatalf("StartStudy failed: %v", err)
	}
	if state.State != "finished" {
		t.Errorf("State = %q, want finished when nothing is due", state.State)
	}
}

func TestStartStudy_EmptyDeckErrors(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck")
	mgr := session.NewManager(NewStore(database), nil)

	_, err := StartStudy(mgr, StartStudyInput{DeckID: id})
	if !errors.Is(err, errors.ErrNoCards) {
		t.Errorf("empty deck should be ErrNoCards, got: %v", err)
	}
}
