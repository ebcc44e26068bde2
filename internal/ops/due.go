package ops

import (
	"database/sql"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/session"
)

// DueInfoInput contains parameters for the DueInfo operation.
type DueInfoInput struct {
	ID string `json:"id"`
}

// DueInfoOutput describes what a study session would contain right now.
type DueInfoOutput struct {
	DeckID    string     `json:"deck_id"`
	CardCount int        `json:"card_count"`
	DueCount  int        `json:"due_count"`
	Invalid   int        `json:"invalid"`
	NextDue   *time.Time `json:"next_due,omitempty"` // earliest future review when nothing is due
}

// DueInfo reports a deck's due and invalid card counts. When nothing is
// due it also reports when the next card becomes due, so the caller can
// say "come back tomorrow".
func DueInfo(database *sql.DB, input DueInfoInput) (*DueInfoOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	d, err := db.GetDeck(database, input.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sel := session.Build(d, now)

	out := &DueInfoOutput{
		DeckID:    d.ID,
		CardCount: len(d.Cards),
		DueCount:  len(sel.Queue),
		Invalid:   sel.Invalid,
	}

	if len(sel.Queue) == 0 {
		var next *time.Time
		for _, c := range d.Cards {
			if !c.NextReview.After(now) {
				continue
			}
			if next == nil || c.NextReview.Before(*next) {
				t := c.NextReview
				next = &t
			}
		}
		out.NextDue = next
	}
	return out, nil
}
