package session

import (
	"time"

	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/srs"
)

// Store is the persistence collaborator the runner writes through.
// Implementations serialize durability concerns; the runner never mutates
// persisted state in place.
type Store interface {
	GetDeck(id string) (*deck.Deck, error)
	ReplaceCard(deckID string, c deck.Card) error
	TouchLastStudied(deckID string, at time.Time) error
}

// Clock supplies the current time. Injectable for deterministic tests.
type Clock func() time.Time

// State is the runner's lifecycle state.
type State int

const (
	StateActive   State = iota + 1 // a card is being shown
	StateFinished                  // queue exhausted, or nothing was due
	StateError                     // terminal: current card corrupted
)

var stateNames = [...]string{
	StateActive:   "active",
	StateFinished: "finished",
	StateError:    "error",
}

func (s State) String() string {
	if s >= StateActive && s <= StateError {
		return stateNames[s]
	}
	return "unknown"
}

// Runner steps through one study session: flip, answer, advance, finish.
// It owns its queue and cursor; scheduling results are written back to the
// deck through the Store, one card per answer.
type Runner struct {
	store  Store
	clock  Clock
	deckID string

	queue    []deck.Card
	cursor   int
	revealed bool
	state    State
	invalid  int
	err      error
}

// Start loads the deck once, builds the session queue and returns a
// runner. A deck that exists but has nothing due yields a runner already
// in StateFinished, not an error. Missing decks and empty decks are
// errors (ErrDeckNotFound / ErrNoCards). A nil clock means time.Now.
func Start(store Store, clock Clock, deckID string) (*Runner, error) {
	if clock == nil {
		clock = time.Now
	}

	d, err := store.GetDeck(deckID)
	if err != nil {
		return nil, err
	}

	sel := Build(d, clock())
	switch sel.Reason {
	case ReasonDeckNotFound:
		return nil, errors.NewDeckNotFound(deckID)
	case ReasonNoCards:
		return nil, errors.NewNoCards(deckID)
	}

	r := &Runner{
		store:   store,
		clock:   clock,
		deckID:  deckID,
		queue:   sel.Queue,
		invalid: sel.Invalid,
		state:   StateActive,
	}
	if sel.Reason == ReasonNothingDue {
		r.state = StateFinished
	}
	return r, nil
}

// DeckID returns the deck this session studies.
func (r *Runner) DeckID() string { return r.deckID }

// State returns the runner's current lifecycle state.
func (r *Runner) State() State { return r.state }

// Err returns the terminal error after StateError, nil otherwise.
func (r *Runner) Err() error { return r.err }

// Invalid returns how many cards the validity filter excluded at build time.
func (r *Runner) Invalid() int { return r.invalid }

// Revealed reports whether the answer side is currently shown.
func (r *Runner) Revealed() bool { return r.revealed }

// Progress returns the zero-based cursor and the queue length.
func (r *Runner) Progress() (index, total int) {
	return r.clampedCursor(), len(r.queue)
}

// Current returns the card being shown. Observing an out-of-range
// scheduling state here is the runtime corruption case: the runner moves
// to StateError and the session ends.
func (r *Runner) Current() (deck.Card, error) {
	if r.state != StateActive {
		return deck.Card{}, errors.NewNoSession(r.deckID)
	}

	c := r.queue[r.clampedCursor()]
	if corrupt(c) {
		r.fail(errors.NewCardCorrupt(c.ID))
		return deck.Card{}, r.err
	}
	return c, nil
}

// Reveal flips the current card to its answer side. Idempotent; a no-op
// outside StateActive.
func (r *Runner) Reveal() {
	if r.state == StateActive {
		r.revealed = true
	}
}

// Answer grades the current card, writes the rescheduled card back into
// the deck, stamps the deck's last-studied time, and advances. After the
// last queued card the runner finishes. Persistence failures are returned
// as-is and leave the session state unchanged, so the answer can be retried.
func (r *Runner) Answer(rating deck.Rating) error {
	if r.state != StateActive {
		return errors.NewNoSession(r.deckID)
	}
	if !rating.IsValid() {
		return errors.NewInvalidRequest("rating must be hard, medium or easy")
	}
	if !r.revealed {
		return errors.NewInvalidRequest("reveal the answer before rating")
	}

	i := r.clampedCursor()
	c := r.queue[i]
	if corrupt(c) {
		r.fail(errors.NewCardCorrupt(c.ID))
		return r.err
	}

	now := r.clock()
	res := srs.ComputeNextReview(rating, c.Interval, c.EaseFactor, now)

	c.Interval = res.Interval
	c.EaseFactor = res.Ease
	c.NextReview = res.NextReview
	c.Status = srs.DeriveStatus(res.Interval)

	if err := r.store.ReplaceCard(r.deckID, c); err != nil {
		return err
	}
	if err := r.store.TouchLastStudied(r.deckID, now); err != nil {
		return err
	}
	r.queue[i] = c

	r.revealed = false
	r.cursor = i + 1
	if r.cursor >= len(r.queue) {
		r.state = StateFinished
	}
	return nil
}

// clampedCursor bounds the cursor to the queue. The cursor exceeding the
// queue while active should not happen under correct sequencing; it is
// treated as recoverable rather than a fault.
func (r *Runner) clampedCursor() int {
	if r.cursor >= len(r.queue) && len(r.queue) > 0 {
		r.cursor = len(r.queue) - 1
	}
	return r.cursor
}

func (r *Runner) fail(err error) {
	r.state = StateError
	r.err = err
}

// corrupt reports whether a card's scheduling state is out of range.
// Selection already filtered blank cards; this guards against the deck
// mutating between selection and display.
func corrupt(c deck.Card) bool {
	return c.Interval < 0 || c.EaseFactor < srs.EaseFloor
}
