package ops

import (
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/session"
)

// StudyState is the wire rendition of a session runner's state, shared by
// the study operations. Front/Back are only present while a card is shown
// (Back only after reveal).
type StudyState struct {
	DeckID   string `json:"deck_id"`
	State    string `json:"state"` // active | finished | error
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Invalid  int    `json:"invalid"`
	Revealed bool   `json:"revealed"`
	CardID   string `json:"card_id,omitempty"`
	Front    string `json:"front,omitempty"`
	Back     string `json:"back,omitempty"`
}

// StartStudyInput contains parameters for the StartStudy operation.
type StartStudyInput struct {
	DeckID string `json:"deck_id"`
}

// StartStudy begins (or restarts) a study session for a deck and returns
// the first card's front, or a finished state when nothing is due.
func StartStudy(mgr *session.Manager, input StartStudyInput) (*StudyState, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck_id is required")
	}

	r, err := mgr.Start(input.DeckID)
	if err != nil {
		return nil, err
	}
	return snapshotState(r)
}

// RevealStudyInput contains parameters for the RevealStudy operation.
type RevealStudyInput struct {
	DeckID string `json:"deck_id"`
}

// RevealStudy flips the current card to its answer side. Idempotent.
func RevealStudy(mgr *session.Manager, input RevealStudyInput) (*StudyState, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck_id is required")
	}

	r, err := mgr.Get(input.DeckID)
	if err != nil {
		return nil, err
	}
	r.Reveal()
	return snapshotState(r)
}

// AnswerStudyInput contains parameters for the AnswerStudy operation.
type AnswerStudyInput struct {
	DeckID string `json:"deck_id"`
	Rating string `json:"rating"` // hard | medium | easy
}

// AnswerStudy grades the current card and advances the session.
func AnswerStudy(mgr *session.Manager, input AnswerStudyInput) (*StudyState, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck_id is required")
	}
	rating, err := deck.ParseRating(input.Rating)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	r, err := mgr.Get(input.DeckID)
	if err != nil {
		return nil, err
	}
	if err := r.Answer(rating); err != nil {
		return nil, err
	}
	return snapshotState(r)
}

// StudyStatusInput contains parameters for the StudyStatus operation.
type StudyStatusInput struct {
	DeckID string `json:"deck_id"`
}

// StudyStatus reports the current session state without changing it.
func StudyStatus(mgr *session.Manager, input StudyStatusInput) (*StudyState, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck_id is required")
	}

	r, err := mgr.Get(input.DeckID)
	if err != nil {
		return nil, err
	}
	return snapshotState(r)
}

// snapshotState renders a runner into the wire state. A corrupt current
// card surfaces as the runner's terminal error.
func snapshotState(r *session.Runner) (*StudyState, error) {
	index, total := r.Progress()
	out := &StudyState{
		DeckID:   r.DeckID(),
		State:    r.State().String(),
		Index:    index,
		Total:    total,
		Invalid:  r.Invalid(),
		Revealed: r.Revealed(),
	}

	if r.State() != session.StateActive {
		return out, nil
	}

	c, err := r.Current()
	if err != nil {
		return nil, err
	}
	out.CardID = c.ID
	out.Front = c.Front
	if r.Revealed() {
		out.Back = c.Back
	}
	return out, nil
}
