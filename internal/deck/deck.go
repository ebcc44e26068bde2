package deck

import "time"

// InitialEase is the ease factor assigned to freshly created cards.
const InitialEase = 2.5

// Card is the unit of study: a front/back pair plus its scheduling state.
type Card struct {
	// ID is a ULID that uniquely identifies the card for its lifetime
	ID string `json:"id"`

	// Front and Back are the two faces. Both must be non-blank after
	// trimming for the card to be studyable.
	Front string `json:"front"`
	Back  string `json:"back"`

	// Status is derived from the interval after every answer, never set
	// directly by the user.
	Status Status `json:"status"`

	// NextReview is the instant before which the card is not due.
	NextReview time.Time `json:"next_review"`

	// Interval is the current spacing in whole days.
	Interval int `json:"interval"`

	// EaseFactor governs interval growth on easy answers. Never below 1.3.
	EaseFactor float64 `json:"ease_factor"`
}

// NewCard creates a card that has never been reviewed: status new,
// interval 0, ease 2.5, due immediately.
func NewCard(id, front, back string, now time.Time) Card {
	return Card{
		ID:         id,
		Front:      front,
		Back:       back,
		Status:     StatusNew,
		NextReview: now,
		Interval:   0,
		EaseFactor: InitialEase,
	}
}

// Due reports whether the card should be shown at the given instant.
// New cards are always due regardless of their NextReview.
func (c Card) Due(now time.Time) bool {
	return c.Status == StatusNew || !c.NextReview.After(now)
}

// Deck is an ordered collection of cards plus metadata.
type Deck struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Cards       []Card     `json:"cards"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudied *time.Time `json:"last_studied"`
}

// FindCard returns the card with the given ID, or nil if absent.
func (d *Deck) FindCard(cardID string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == cardID {
			return &d.Cards[i]
		}
	}
	return nil
}
