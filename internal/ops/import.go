package ops

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// ImportMode controls collision behavior when an imported deck's ID
// already exists.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on collision
	ImportModeReplace ImportMode = "replace" // overwrite the existing deck
	ImportModeRename  ImportMode = "rename"  // import under fresh IDs
)

// ImportInput contains parameters for the ImportDeck operation.
type ImportInput struct {
	Path     string     // required; .json or .md
	Mode     ImportMode // default: error
	Title    string     // markdown only; default: derived from filename
	Category string     // markdown only; default: config default category
}

// ImportOutput contains the result of the ImportDeck operation.
type ImportOutput struct {
	DeckID   string        `json:"deck_id,omitempty"`
	Title    string        `json:"title,omitempty"`
	Format   string        `json:"format"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError represents a problem with part of an import file.
type ImportError struct {
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportDeck imports a deck from a file. JSON files are full exports and
// preserve each card's review state; markdown files (Q:/A: blocks) create
// a new deck whose cards all start unseen.
func ImportDeck(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace && input.Mode != ImportModeRename {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace, rename")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg, ".json", ".md"); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(filepath.Clean(input.Path))
	if err != nil {
		if _, ok := err.(*errors.Error); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	if filepath.Ext(input.Path) == ".md" {
		return importMarkdown(database, cfg, file, input)
	}
	return importJSON(database, file, input.Mode)
}

// importJSON imports a JSON export file, preserving review state.
func importJSON(database *sql.DB, r io.Reader, mode ImportMode) (*ImportOutput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	var doc exportFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid JSON: %v", err))
	}
	if !doc.LembraExport {
		return nil, errors.NewInvalidRequest("file is not a deck export")
	}

	d, importErrors, err := exportRecordToDeck(doc.Deck)
	if err != nil {
		return nil, err
	}
	if d.Title == "" {
		return nil, errors.NewInvalidRequest("export has no deck title")
	}

	exists, err := db.DeckExists(database, d.ID)
	if err != nil {
		return nil, err
	}

	if exists {
		switch mode {
		case ImportModeError:
			importErrors = append(importErrors, ImportError{
				ID:      d.ID,
				Code:    "ID_COLLISION",
				Message: fmt.Sprintf("deck with id %q already exists", d.ID),
			})
			return &ImportOutput{
				Format:  "json",
				Skipped: len(d.Cards),
				Errors:  importErrors,
			}, nil
		case ImportModeReplace:
			if err := db.DeleteDeck(database, d.ID); err != nil {
				return nil, err
			}
		case ImportModeRename:
			if d.ID, err = generateULID(); err != nil {
				return nil, errors.NewInternal(err)
			}
			for i := range d.Cards {
				if d.Cards[i].ID, err = generateULID(); err != nil {
					return nil, errors.NewInternal(err)
				}
			}
		}
	}

	if err := db.InsertDeck(database, d); err != nil {
		return nil, err
	}

	return &ImportOutput{
		DeckID:   d.ID,
		Title:    d.Title,
		Format:   "json",
		Imported: len(d.Cards),
		Errors:   importErrors,
	}, nil
}

// importMarkdown imports Q:/A: card blocks as a brand new deck.
func importMarkdown(database *sql.DB, cfg *config.Config, r io.Reader, input ImportInput) (*ImportOutput, error) {
	cards, err := ParseMarkdownCards(r)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	if len(cards) == 0 {
		return nil, errors.NewInvalidRequest("no cards found in markdown file")
	}

	title := deck.NormalizeTitle(input.Title)
	if title == "" {
		base := filepath.Base(input.Path)
		title = deck.NormalizeTitle(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	created, err := CreateDeck(database, cfg, CreateDeckInput{
		Title:    title,
		Category: input.Category,
		Cards:    cards,
	})
	if err != nil {
		return nil, err
	}

	return &ImportOutput{
		DeckID:   created.ID,
		Title:    created.Title,
		Format:   "markdown",
		Imported: created.CardCount,
		Skipped:  created.Dropped,
	}, nil
}

// exportRecordToDeck converts the wire shape back into a deck. Cards with
// unparseable fields are repaired rather than dropped: an unknown status
// falls back to new, and missing timestamps default to now.
func exportRecordToDeck(rec exportDeck) (*deck.Deck, []ImportError, error) {
	var importErrors []ImportError
	now := time.Now()

	d := &deck.Deck{
		ID:       rec.ID,
		Title:    deck.NormalizeTitle(rec.Title),
		Category: rec.Category,
		Cards:    make([]deck.Card, 0, len(rec.Cards)),
	}
	if d.ID == "" {
		id, err := generateULID()
		if err != nil {
			return nil, nil, errors.NewInternal(err)
		}
		d.ID = id
	}
	if rec.CreatedAt > 0 {
		d.CreatedAt = time.UnixMilli(rec.CreatedAt)
	} else {
		d.CreatedAt = now
	}
	if rec.LastStudied != nil {
		ls := time.UnixMilli(*rec.LastStudied)
		d.LastStudied = &ls
	}

	for _, rc := range rec.Cards {
		c := deck.Card{
			ID:         rc.ID,
			Front:      rc.Front,
			Back:       rc.Back,
			Interval:   rc.Interval,
			EaseFactor: rc.EaseFactor,
		}
		if c.ID == "" {
			id, err := generateULID()
			if err != nil {
				return nil, nil, errors.NewInternal(err)
			}
			c.ID = id
		}

		status, err := deck.ParseStatus(rc.Status)
		if err != nil {
			importErrors = append(importErrors, ImportError{
				ID:      c.ID,
				Code:    "UNKNOWN_STATUS",
				Message: fmt.Sprintf("unknown status %q, treating card as new", rc.Status),
			})
			status = deck.StatusNew
		}
		c.Status = status

		if rc.NextReview > 0 {
			c.NextReview = time.UnixMilli(rc.NextReview)
		} else {
			c.NextReview = now
		}

		d.Cards = append(d.Cards, c)
	}

	return d, importErrors, nil
}
