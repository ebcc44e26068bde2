package db

import (
	"database/sql"
	"time"

	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// Timestamps are stored as Unix milliseconds so the original app's JSON
// exports round-trip exactly.

func timeToMs(t time.Time) int64 {
	return t.UnixMilli()
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// InsertDeck stores a deck and all of its cards in one transaction.
func InsertDeck(db *sql.DB, d *deck.Deck) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var lastStudied sql.NullInt64
	if d.LastStudied != nil {
		lastStudied = sql.NullInt64{Int64: timeToMs(*d.LastStudied), Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO decks (id, title, category, created_at, last_studied)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.Title, d.Category, timeToMs(d.CreatedAt), lastStudied)
	if err != nil {
		return errors.NewInternal(err)
	}

	for i, c := range d.Cards {
		if err := insertCardTx(tx, d.ID, i, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

func insertCardTx(tx *sql.Tx, deckID string, position int, c deck.Card) error {
	_, err := tx.Exec(`
		INSERT INTO cards (id, deck_id, position, front, back, status,
			next_review, interval_days, ease_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, deckID, position, c.Front, c.Back, c.Status.String(),
		timeToMs(c.NextReview), c.Interval, c.EaseFactor)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetDeck retrieves a deck with its full card collection, cards ordered
// by insertion position. Returns ErrDeckNotFound if the deck is absent.
func GetDeck(db *sql.DB, id string) (*deck.Deck, error) {
	row := db.QueryRow(`
		SELECT id, title, category, created_at, last_studied
		FROM decks WHERE id = ?
	`, id)

	d, err := scanDeck(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewDeckNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	cards, err := getCards(db, id)
	if err != nil {
		return nil, err
	}
	d.Cards = cards
	return d, nil
}

// DeckExists reports whether a deck row exists.
func DeckExists(db *sql.DB, id string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM decks WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// ListDecks retrieves all decks without their cards, newest first.
func ListDecks(db *sql.DB) ([]deck.Deck, error) {
	rows, err := db.Query(`
		SELECT id, title, category, created_at, last_studied
		FROM decks ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var decks []deck.Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		decks = append(decks, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return decks, nil
}

// UpdateDeckMeta updates a deck's title and category.
func UpdateDeckMeta(db *sql.DB, id, title, category string) error {
	res, err := db.Exec(`
		UPDATE decks SET title = ?, category = ? WHERE id = ?
	`, title, category, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireDeckRow(res, id)
}

// TouchLastStudied records when the deck was last studied.
func TouchLastStudied(db *sql.DB, id string, at time.Time) error {
	res, err := db.Exec(`
		UPDATE decks SET last_studied = ? WHERE id = ?
	`, timeToMs(at), id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireDeckRow(res, id)
}

// DeleteDeck removes a deck; its cards go with it via ON DELETE CASCADE.
func DeleteDeck(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireDeckRow(res, id)
}

// InsertCard appends a card to the end of a deck.
func InsertCard(db *sql.DB, deckID string, c deck.Card) error {
	exists, err := DeckExists(db, deckID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewDeckNotFound(deckID)
	}

	// Next position: one past the current maximum.
	_, err = db.Exec(`
		INSERT INTO cards (id, deck_id, position, front, back, status,
			next_review, interval_days, ease_factor)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM cards WHERE deck_id = ?),
			?, ?, ?, ?, ?, ?)
	`, c.ID, deckID, deckID, c.Front, c.Back, c.Status.String(),
		timeToMs(c.NextReview), c.Interval, c.EaseFactor)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ReplaceCard writes a card's full state back into its deck, matching by
// card ID and leaving every other card untouched.
func ReplaceCard(db *sql.DB, deckID string, c deck.Card) error {
	res, err := db.Exec(`
		UPDATE cards
		SET front = ?, back = ?, status = ?, next_review = ?,
			interval_days = ?, ease_factor = ?
		WHERE id = ? AND deck_id = ?
	`, c.Front, c.Back, c.Status.String(), timeToMs(c.NextReview),
		c.Interval, c.EaseFactor, c.ID, deckID)
	if err != nil {
		return errors.NewInternal(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewCardNotFound(deckID, c.ID)
	}
	return nil
}

// DeleteCard removes a single card from a deck.
func DeleteCard(db *sql.DB, deckID, cardID string) error {
	res, err := db.Exec(`
		DELETE FROM cards WHERE id = ? AND deck_id = ?
	`, cardID, deckID)
	if err != nil {
		return errors.NewInternal(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewCardNotFound(deckID, cardID)
	}
	return nil
}

// getCards loads a deck's cards ordered by insertion position.
func getCards(db *sql.DB, deckID string) ([]deck.Card, error) {
	rows, err := db.Query(`
		SELECT id, front, back, status, next_review, interval_days, ease_factor
		FROM cards WHERE deck_id = ? ORDER BY position
	`, deckID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var cards []deck.Card
	for rows.Next() {
		var c deck.Card
		var status string
		var nextReview int64
		if err := rows.Scan(&c.ID, &c.Front, &c.Back, &status,
			&nextReview, &c.Interval, &c.EaseFactor); err != nil {
			return nil, errors.NewInternal(err)
		}
		// An unrecognized stored status degrades to new, which keeps the
		// card reachable (it stays due) instead of wedging the deck.
		s, err := deck.ParseStatus(status)
		if err != nil {
			s = deck.StatusNew
		}
		c.Status = s
		c.NextReview = msToTime(nextReview)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return cards, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDeck(row scanner) (*deck.Deck, error) {
	var d deck.Deck
	var createdAt int64
	var lastStudied sql.NullInt64

	if err := row.Scan(&d.ID, &d.Title, &d.Category, &createdAt, &lastStudied); err != nil {
		return nil, err
	}

	d.CreatedAt = msToTime(createdAt)
	if lastStudied.Valid {
		t := msToTime(lastStudied.Int64)
		d.LastStudied = &t
	}
	return &d, nil
}

func requireDeckRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewDeckNotFound(id)
	}
	return nil
}
