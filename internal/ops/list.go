package ops

import (
	"database/sql"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/session"
)

// DeckSummary is one row of the deck list.
type DeckSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	CardCount   int        `json:"card_count"`
	DueCount    int        `json:"due_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudied *time.Time `json:"last_studied"`
}

// ListDecksOutput contains the result of the ListDecks operation.
type ListDecksOutput struct {
	Decks []DeckSummary `json:"decks"`
	Total int           `json:"total"`
}

// ListDecks retrieves summaries for every deck, newest first. Due counts
// use the session selector so the numbers match what a study session
// would actually contain.
func ListDecks(database *sql.DB) (*ListDecksOutput, error) {
	decks, err := db.ListDecks(database)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summaries := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		full, err := db.GetDeck(database, d.ID)
		if err != nil {
			return nil, err
		}
		sel := session.Build(full, now)

		summaries = append(summaries, DeckSummary{
			ID:          d.ID,
			Title:       d.Title,
			Category:    d.Category,
			CardCount:   len(full.Cards),
			DueCount:    len(sel.Queue),
			CreatedAt:   d.CreatedAt,
			LastStudied: d.LastStudied,
		})
	}

	return &ListDecksOutput{Decks: summaries, Total: len(summaries)}, nil
}
