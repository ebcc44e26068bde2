// Package session builds study queues and drives them one card at a time.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/lembra-app/lembra/internal/deck"
)

// EmptyReason explains why a session queue could not be built.
type EmptyReason int

const (
	ReasonNone         EmptyReason = iota // queue is non-empty
	ReasonDeckNotFound                    // deck absent or malformed
	ReasonNoCards                         // deck exists but holds no cards
	ReasonNothingDue                      // valid cards exist, none due now
)

var emptyReasonNames = [...]string{
	ReasonNone:         "none",
	ReasonDeckNotFound: "deck_not_found",
	ReasonNoCards:      "no_cards",
	ReasonNothingDue:   "nothing_due",
}

func (r EmptyReason) String() string {
	if r >= ReasonNone && r <= ReasonNothingDue {
		return emptyReasonNames[r]
	}
	return fmt.Sprintf("EmptyReason(%d)", int(r))
}

// Selection is the outcome of building a session queue.
type Selection struct {
	// Queue holds copies of the due cards, ascending by NextReview with
	// original deck order breaking ties. Later mutation of the source
	// deck does not affect it.
	Queue []deck.Card

	// Invalid counts cards excluded by the validity filter.
	Invalid int

	// Reason is ReasonNone when Queue is non-empty. ReasonNothingDue is
	// a success outcome: the deck is fine, there is just nothing to do.
	Reason EmptyReason
}

// Build selects and orders the cards due for review at the given instant.
func Build(d *deck.Deck, now time.Time) Selection {
	if d == nil || d.Cards == nil {
		if d != nil && d.Cards == nil {
			return Selection{Reason: ReasonNoCards}
		}
		return Selection{Reason: ReasonDeckNotFound}
	}
	if len(d.Cards) == 0 {
		return Selection{Reason: ReasonNoCards}
	}

	var invalid int
	queue := make([]deck.Card, 0, len(d.Cards))
	for _, c := range d.Cards {
		if !deck.ValidCard(c) {
			invalid++
			continue
		}
		if c.Due(now) {
			queue = append(queue, c)
		}
	}

	// Stable: new cards commonly share the same insertion-time NextReview.
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].NextReview.Before(queue[j].NextReview)
	})

	if len(queue) == 0 {
		return Selection{Invalid: invalid, Reason: ReasonNothingDue}
	}
	return Selection{Queue: queue, Invalid: invalid}
}
