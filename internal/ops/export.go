package ops

import (
	"bytes"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

// ExportInput contains parameters for the ExportDeck operation.
type ExportInput struct {
	DeckID string
	Path   string // optional, default: ~/.lembra/exports/<title>-<timestamp>.json
}

// ExportOutput contains the result of the ExportDeck operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Cards      int    `json:"cards"`
	ExportedAt int64  `json:"exported_at"`
}

// exportCard is the card wire shape for JSON exports. Field names and the
// millisecond timestamps match the original browser app's localStorage
// format so files round-trip between the two.
type exportCard struct {
	ID         string  `json:"id"`
	Front      string  `json:"front"`
	Back       string  `json:"back"`
	Status     string  `json:"status"`
	NextReview int64   `json:"nextReview"`
	Interval   int     `json:"interval"`
	EaseFactor float64 `json:"easeFactor"`
}

// exportDeck is the deck wire shape for JSON exports.
type exportDeck struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Cards       []exportCard `json:"cards"`
	CreatedAt   int64        `json:"createdAt"`
	LastStudied *int64       `json:"lastStudied"`
}

// exportFile is the top-level JSON export document.
type exportFile struct {
	LembraExport  bool       `json:"_lembra_export"`
	SchemaVersion string     `json:"schemaVersion"`
	ExportedAt    int64      `json:"exportedAt"`
	Deck          exportDeck `json:"deck"`
}

const exportSchemaVersion = "1.0"

// ExportDeck exports a deck to a JSON or HTML file. The format is chosen
// by the path extension. JSON exports can be re-imported; HTML exports
// are a read-only rendering of the card faces.
func ExportDeck(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	if input.DeckID == "" {
		return nil, errors.NewInvalidRequest("deck id is required")
	}

	d, err := db.GetDeck(database, input.DeckID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	exportPath := input.Path
	if exportPath == "" {
		exportPath, err = defaultExportPath(d.Title, now)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for security.
	if err := ValidatePath(exportPath, PathCheckWrite, cfg, ".json", ".html"); err != nil {
		return nil, err
	}

	format := "json"
	if filepath.Ext(exportPath) == ".html" {
		format = "html"
	}

	var payload []byte
	switch format {
	case "html":
		payload, err = renderDeckHTML(d)
	default:
		payload, err = marshalDeckJSON(d, now)
	}
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(exportPath, payload); err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:       exportPath,
		Format:     format,
		Cards:      len(d.Cards),
		ExportedAt: now.UnixMilli(),
	}, nil
}

func marshalDeckJSON(d *deck.Deck, now time.Time) ([]byte, error) {
	doc := exportFile{
		LembraExport:  true,
		SchemaVersion: exportSchemaVersion,
		ExportedAt:    now.UnixMilli(),
		Deck:          deckToExportRecord(d),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return append(data, '\n'), nil
}

func deckToExportRecord(d *deck.Deck) exportDeck {
	rec := exportDeck{
		ID:        d.ID,
		Title:     d.Title,
		Category:  d.Category,
		Cards:     make([]exportCard, 0, len(d.Cards)),
		CreatedAt: d.CreatedAt.UnixMilli(),
	}
	if d.LastStudied != nil {
		ms := d.LastStudied.UnixMilli()
		rec.LastStudied = &ms
	}
	for _, c := range d.Cards {
		rec.Cards = append(rec.Cards, exportCard{
			ID:         c.ID,
			Front:      c.Front,
			Back:       c.Back,
			Status:     c.Status.String(),
			NextReview: c.NextReview.UnixMilli(),
			Interval:   c.Interval,
			EaseFactor: c.EaseFactor,
		})
	}
	return rec
}

// renderDeckHTML renders the deck as a standalone HTML page with each
// card's front and back converted from markdown.
func renderDeckHTML(d *deck.Deck) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(d.Title))
	buf.WriteString("<style>body{font-family:sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}" +
		".card{border:1px solid #ccc;border-radius:8px;padding:1rem;margin:1rem 0}" +
		".front{font-weight:bold;border-bottom:1px solid #eee;padding-bottom:.5rem;margin-bottom:.5rem}</style>\n")
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n<p>%s</p>\n",
		html.EscapeString(d.Title), html.EscapeString(d.Category))

	for _, c := range d.Cards {
		buf.WriteString("<div class=\"card\">\n<div class=\"front\">\n")
		if err := md.Convert([]byte(c.Front), &buf); err != nil {
			return nil, errors.NewInternal(err)
		}
		buf.WriteString("</div>\n<div class=\"back\">\n")
		if err := md.Convert([]byte(c.Back), &buf); err != nil {
			return nil, errors.NewInternal(err)
		}
		buf.WriteString("</div>\n</div>\n")
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// writeFileAtomic writes payload to a temp file in the destination
// directory, then renames it into place so an existing file is preserved
// on failure.
func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(payload); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it).
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}

// defaultExportPath generates the default export path.
// Format: ~/.lembra/exports/<title>-<timestamp>.json
func defaultExportPath(title string, now time.Time) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	timestamp := now.Format("2006-01-02T150405")
	filename := fmt.Sprintf("%s-%s.json", SanitizeForFilename(title), timestamp)
	return filepath.Join(exportsDir, filename), nil
}
