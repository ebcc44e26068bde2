package errors

import "fmt"

// ErrorCode represents a Lembra error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrDeckNotFound   ErrorCode = "DECK_NOT_FOUND"  // 404
	ErrCardNotFound   ErrorCode = "CARD_NOT_FOUND"  // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrNoCards        ErrorCode = "NO_CARDS"        // 422
	ErrCardCorrupt    ErrorCode = "CARD_CORRUPT"    // 422
	ErrNoSession      ErrorCode = "NO_SESSION"      // 409
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error is a structured error with code, status, and optional details.
// "Nothing due" is deliberately absent: a deck with no due cards is a
// normal session outcome, not an error.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewDeckNotFound creates a 404 error for a missing deck.
func NewDeckNotFound(id string) *Error {
	return &Error{
		Code:    ErrDeckNotFound,
		Status:  404,
		Message: fmt.Sprintf("deck not found: %s", id),
		Details: map[string]any{"deck_id": id},
	}
}

// NewCardNotFound creates a 404 error for a missing card within a deck.
func NewCardNotFound(deckID, cardID string) *Error {
	return &Error{
		Code:    ErrCardNotFound,
		Status:  404,
		Message: fmt.Sprintf("card not found: %s", cardID),
		Details: map[string]any{"deck_id": deckID, "card_id": cardID},
	}
}

// NewFileNotFound creates a 404 error for a missing import/export file.
func NewFileNotFound(path string) *Error {
	return &Error{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewNoCards creates a 422 error for starting a session on a deck with no
// cards at all. Distinct from the nothing-due outcome, which is not an error.
func NewNoCards(deckID string) *Error {
	return &Error{
		Code:    ErrNoCards,
		Status:  422,
		Message: "deck has no cards to study",
		Details: map[string]any{"deck_id": deckID},
	}
}

// NewCardCorrupt creates a 422 error for a card whose scheduling state is
// out of range at display or answer time. The message is intentionally
// generic; details carry the card ID for diagnostics.
func NewCardCorrupt(cardID string) *Error {
	return &Error{
		Code:    ErrCardCorrupt,
		Status:  422,
		Message: "current card is corrupted",
		Details: map[string]any{"card_id": cardID},
	}
}

// NewNoSession creates a 409 error for study actions without an active session.
func NewNoSession(deckID string) *Error {
	return &Error{
		Code:    ErrNoSession,
		Status:  409,
		Message: fmt.Sprintf("no active study session for deck %s", deckID),
		Details: map[string]any{"deck_id": deckID},
	}
}

// NewCancelled creates a 499 error for a context-cancelled operation.
func NewCancelled(operation string) *Error {
	return &Error{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a lembra Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
