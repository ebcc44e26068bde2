package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/errors"
	"github.com/lembra-app/lembra/internal/ops"
	"github.com/lembra-app/lembra/internal/session"
)

// Handlers holds dependencies for MCP tool handlers. Study sessions live
// in the manager for the lifetime of the server process.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
	mgr *session.Manager
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		db:  db,
		cfg: cfg,
		mgr: session.NewManager(ops.NewStore(db), nil),
	}
}

// Request types for each tool

// DeckCreateRequest represents the arguments for deck_create.
type DeckCreateRequest struct {
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Cards    []ops.CardInput `json:"cards,omitempty"`
}

// DeckGetRequest represents the arguments for deck_get.
type DeckGetRequest struct {
	ID           string `json:"id"`
	IncludeCards bool   `json:"include_cards,omitempty"`
}

// DeckUpdateRequest represents the arguments for deck_update.
type DeckUpdateRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
}

// DeckDeleteRequest represents the arguments for deck_delete.
type DeckDeleteRequest struct {
	ID string `json:"id"`
}

// DeckDueRequest represents the arguments for deck_due.
type DeckDueRequest struct {
	ID string `json:"id"`
}

// DeckExportRequest represents the arguments for deck_export.
type DeckExportRequest struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
}

// DeckImportRequest represents the arguments for deck_import.
type DeckImportRequest struct {
	Path     string `json:"path"`
	Mode     string `json:"mode,omitempty"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
}

// CardAddRequest represents the arguments for card_add.
type CardAddRequest struct {
	DeckID string `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

// CardUpdateRequest represents the arguments for card_update.
type CardUpdateRequest struct {
	DeckID string  `json:"deck_id"`
	CardID string  `json:"card_id"`
	Front  *string `json:"front,omitempty"`
	Back   *string `json:"back,omitempty"`
}

// CardRemoveRequest represents the arguments for card_remove.
type CardRemoveRequest struct {
	DeckID string `json:"deck_id"`
	CardID string `json:"card_id"`
}

// StudyRequest represents the arguments for study_start, study_reveal
// and study_status.
type StudyRequest struct {
	DeckID string `json:"deck_id"`
}

// StudyAnswerRequest represents the arguments for study_answer.
type StudyAnswerRequest struct {
	DeckID string `json:"deck_id"`
	Rating string `json:"rating"`
}

// Handler implementations

// HandleDeckCreate handles the deck_create tool call.
func (h *Handlers) HandleDeckCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateDeck(h.db, h.cfg, ops.CreateDeckInput{
		Title:    input.Title,
		Category: input.Category,
		Cards:    input.Cards,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckGet handles the deck_get tool call.
func (h *Handlers) HandleDeckGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FetchDeck(h.db, ops.FetchDeckInput{
		ID:           input.ID,
		IncludeCards: input.IncludeCards,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckList handles the deck_list tool call.
func (h *Handlers) HandleDeckList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListDecks(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckUpdate handles the deck_update tool call.
func (h *Handlers) HandleDeckUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateDeck(h.db, ops.UpdateDeckInput{
		ID:       input.ID,
		Title:    input.Title,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckDelete handles the deck_delete tool call.
func (h *Handlers) HandleDeckDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteDeck(h.db, ops.DeleteDeckInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	// A deleted deck's session is meaningless.
	h.mgr.End(input.ID)

	return successResult(result)
}

// HandleDeckDue handles the deck_due tool call.
func (h *Handlers) HandleDeckDue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckDueRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DueInfo(h.db, ops.DueInfoInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckExport handles the deck_export tool call.
func (h *Handlers) HandleDeckExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ExportDeck(h.db, h.cfg, ops.ExportInput{
		DeckID: input.ID,
		Path:   input.Path,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeckImport handles the deck_import tool call.
func (h *Handlers) HandleDeckImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeckImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	mode := ops.ImportModeError
	switch input.Mode {
	case "replace":
		mode = ops.ImportModeReplace
	case "rename":
		mode = ops.ImportModeRename
	}

	result, err := ops.ImportDeck(h.db, h.cfg, ops.ImportInput{
		Path:     input.Path,
		Mode:     mode,
		Title:    input.Title,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCardAdd handles the card_add tool call.
func (h *Handlers) HandleCardAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CardAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddCard(h.db, ops.AddCardInput{
		DeckID: input.DeckID,
		Front:  input.Front,
		Back:   input.Back,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCardUpdate handles the card_update tool call.
func (h *Handlers) HandleCardUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CardUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateCard(h.db, ops.UpdateCardInput{
		DeckID: input.DeckID,
		CardID: input.CardID,
		Front:  input.Front,
		Back:   input.Back,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCardRemove handles the card_remove tool call.
func (h *Handlers) HandleCardRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CardRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveCard(h.db, ops.RemoveCardInput{
		DeckID: input.DeckID,
		CardID: input.CardID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStudyStart handles the study_start tool call.
func (h *Handlers) HandleStudyStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StudyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.StartStudy(h.mgr, ops.StartStudyInput{DeckID: input.DeckID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStudyReveal handles the study_reveal tool call.
func (h *Handlers) HandleStudyReveal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StudyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RevealStudy(h.mgr, ops.RevealStudyInput{DeckID: input.DeckID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStudyAnswer handles the study_answer tool call.
func (h *Handlers) HandleStudyAnswer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StudyAnswerRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AnswerStudy(h.mgr, ops.AnswerStudyInput{
		DeckID: input.DeckID,
		Rating: input.Rating,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStudyStatus handles the study_status tool call.
func (h *Handlers) HandleStudyStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StudyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.StudyStatus(h.mgr, ops.StudyStatusInput{DeckID: input.DeckID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lerr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    lerr.Code,
			"message": lerr.Message,
			"status":  lerr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if lerr.Code != errors.ErrInternal && lerr.Details != nil {
			errorObj["details"] = lerr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
