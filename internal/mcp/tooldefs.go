package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var deckCreateToolDef = mcp.NewTool("deck_create",
	mcp.WithDescription("Create a flashcard deck, optionally seeded with cards. Cards blank on both sides are dropped."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Deck title. Surrounding whitespace is collapsed."),
	),
	mcp.WithString("category",
		mcp.Description("Deck category. Defaults to the configured default category."),
	),
	mcp.WithArray("cards",
		mcp.Description("Initial cards as objects with 'front' and 'back' strings."),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front": map[string]any{"type": "string"},
				"back":  map[string]any{"type": "string"},
			},
		}),
	),
)

var deckGetToolDef = mcp.NewTool("deck_get",
	mcp.WithDescription("Fetch a deck by ID with card, due and invalid counts."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithBoolean("include_cards",
		mcp.Description("Include the full card list in the response. Default: false."),
	),
)

var deckListToolDef = mcp.NewTool("deck_list",
	mcp.WithDescription("List all decks with card and due counts, newest first."),
)

var deckUpdateToolDef = mcp.NewTool("deck_update",
	mcp.WithDescription("Rename a deck and/or change its category. Omitted fields are unchanged."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithString("title",
		mcp.Description("New deck title."),
	),
	mcp.WithString("category",
		mcp.Description("New deck category."),
	),
)

var deckDeleteToolDef = mcp.NewTool("deck_delete",
	mcp.WithDescription("Delete a deck and all of its cards. This cannot be undone."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
)

var deckDueToolDef = mcp.NewTool("deck_due",
	mcp.WithDescription("Report how many cards are due for study in a deck right now, and when the next card becomes due if none are."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
)

var deckExportToolDef = mcp.NewTool("deck_export",
	mcp.WithDescription("Export a deck to a .json file (re-importable, preserves review state) or a .html file (rendered card faces). The format follows the path extension."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithString("path",
		mcp.Description("Destination path. Defaults to ~/.lembra/exports/<title>-<timestamp>.json."),
	),
)

var deckImportToolDef = mcp.NewTool("deck_import",
	mcp.WithDescription("Import a deck from a .json export (preserves review state) or a .md file of Q:/A: blocks (cards start new)."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Source file path ending in .json or .md."),
	),
	mcp.WithString("mode",
		mcp.Description("Collision behavior when the deck ID already exists: 'error' (default), 'replace', or 'rename'."),
		mcp.Enum("error", "replace", "rename"),
	),
	mcp.WithString("title",
		mcp.Description("Deck title for markdown imports. Defaults to the filename."),
	),
	mcp.WithString("category",
		mcp.Description("Deck category for markdown imports."),
	),
)

var cardAddToolDef = mcp.NewTool("card_add",
	mcp.WithDescription("Add a card to a deck. Both faces are required; the card is immediately due."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithString("front",
		mcp.Required(),
		mcp.Description("Question side."),
	),
	mcp.WithString("back",
		mcp.Required(),
		mcp.Description("Answer side."),
	),
)

var cardUpdateToolDef = mcp.NewTool("card_update",
	mcp.WithDescription("Edit a card's front and/or back text. Review scheduling is preserved."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithString("card_id",
		mcp.Required(),
		mcp.Description("Card ID."),
	),
	mcp.WithString("front",
		mcp.Description("New question side."),
	),
	mcp.WithString("back",
		mcp.Description("New answer side."),
	),
)

var cardRemoveToolDef = mcp.NewTool("card_remove",
	mcp.WithDescription("Remove a single card from a deck."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
	mcp.WithString("card_id",
		mcp.Required(),
		mcp.Description("Card ID."),
	),
)

var studyStartToolDef = mcp.NewTool("study_start",
	mcp.WithDescription("Start (or restart) a study session for a deck. Returns the first due card's front, or a finished state when nothing is due."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID."),
	),
)

var studyRevealToolDef = mcp.NewTool("study_reveal",
	mcp.WithDescription("Reveal the answer side of the current card. Safe to call more than once."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID of the active session."),
	),
)

var studyAnswerToolDef = mcp.NewTool("study_answer",
	mcp.WithDescription("Grade the current card and advance to the next one. The card must be revealed first."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID of the active session."),
	),
	mcp.WithString("rating",
		mcp.Required(),
		mcp.Description("How hard the card was to recall."),
		mcp.Enum("hard", "medium", "easy"),
	),
)

var studyStatusToolDef = mcp.NewTool("study_status",
	mcp.WithDescription("Report the current study session's state without changing it."),
	mcp.WithString("deck_id",
		mcp.Required(),
		mcp.Description("Deck ID of the active session."),
	),
)
