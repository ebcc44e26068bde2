package ops

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lembra-app/lembra/internal/db"
	"github.com/lembra-app/lembra/internal/deck"
	"github.com/lembra-app/lembra/internal/errors"
)

func TestExportDeck_JSON(t *testing.T) {
	database := setupDB(t)
	dir := t.TempDir()
	cfg := allowedConfig(dir)
	id := mustCreate(t, database, "Biologia",
		CardInput{Front: "q1", Back: "a1"},
		CardInput{Front: "q2", Back: "a2"},
	)

	next := time.Now().Add(72 * time.Hour).Truncate(time.Millisecond)
	d, err := db.GetDeck(database, id)
	if err != nil {
		t.Fatalf("GetDeck failed: %v", err)
	}
	scheduleCard(t, database, id, d.Cards[0].ID, deck.StatusReview, next, 3, 2.65)

	path := filepath.Join(dir, "biologia.json")
	out, err := ExportDeck(database, cfg, ExportInput{DeckID: id, Path: path})
	if err != nil {
		t.Fatalf("ExportDeck failed: %v", err)
	}
	if out.Format != "json" || out.Cards != 2 || out.Path != path {
		t.Errorf("output = %+v", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("export should end with a newline")
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc["_lembra_export"] != true {
		t.Error("export marker missing")
	}
	if doc["schemaVersion"] != "1.0" {
		t.Errorf("schemaVersion = %v, want 1.0", doc["schemaVersion"])
	}

	deckDoc := doc["deck"].(map[string]any)
	if deckDoc["title"] != "Biologia" {
		t.Errorf("title = %v", deckDoc["title"])
	}
	cards := deckDoc["cards"].([]any)
	first := cards[0].(map[string]any)
	// Wire field names and millisecond timestamps follow the browser
	// app's localStorage format.
	if first["status"] != "review" {
		t.Errorf("status = %v, want review", first["status"])
	}
	if int64(first["nextReview"].(float64)) != next.UnixMilli() {
		t.Errorf("nextReview = %v, want %d", first["nextReview"], next.UnixMilli())
	}
	if first["easeFactor"].(float64) != 2.65 {
		t.Errorf("easeFactor = %v, want 2.65", first["easeFactor"])
	}
}

func TestExportDeck_HTML(t *testing.T) {
	database := setupDB(t)
	dir := t.TempDir()
	id := mustCreate(t, database, "Quimica <b>",
		CardInput{Front: "What is *water*?", Back: "H2O"},
	)

	path := filepath.Join(dir, "quimica.html")
	out, err := ExportDeck(database, allowedConfig(dir), ExportInput{DeckID: id, Path: path})
	if err != nil {
		t.Fatalf("ExportDeck failed: %v", err)
	}
	if out.Format != "html" {
		t.Errorf("Format = %q, want html", out.Format)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	page := string(data)
	if !strings.Contains(page, "Quimica &lt;b&gt;") {
		t.Error("title should be HTML-escaped")
	}
	if !strings.Contains(page, "<em>water</em>") {
		t.Error("card faces should be rendered as markdown")
	}
	if !strings.Contains(page, "H2O") {
		t.Error("answer side missing from page")
	}
}

func TestExportDeck_DefaultPath(t *testing.T) {
	database := setupDB(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	id := mustCreate(t, database, "Meu Deck", CardInput{Front: "q", Back: "a"})

	out, err := ExportDeck(database, testConfig(), ExportInput{DeckID: id})
	if err != nil {
		t.Fatalf("ExportDeck failed: %v", err)
	}
	wantDir := filepath.Join(home, ".lembra", "exports")
	if filepath.Dir(out.Path) != wantDir {
		t.Errorf("Path = %q, want a file in %q", out.Path, wantDir)
	}
	base := filepath.Base(out.Path)
	if !strings.HasPrefix(base, "Meu Deck-") || !strings.HasSuffix(base, ".json") {
		t.Errorf("default filename = %q", base)
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestExportDeck_RejectsUnapprovedDir(t *testing.T) {
	database := setupDB(t)
	id := mustCreate(t, database, "Deck", CardInput{Front: "q", Back: "a"})

	_, err := ExportDeck(database, testConfig(), ExportInput{
		DeckID: id,
		Path:   filepath.Join(t.TempDir(), "out.json"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("unapproved dir should be ErrInvalidRequest, got: %v", err)
	}
}

func TestExportDeck_NotFound(t *testing.T) {
	database := setupDB(t)

	_, err := ExportDeck(database, testConfig(), ExportInput{DeckID: "missing"})
	if !errors.Is(err, errors.ErrDeckNotFound) {
		t.Errorf("ExportDeck should be ErrDeckNotFound, got: %v", err)
	}
}
