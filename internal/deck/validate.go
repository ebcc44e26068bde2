package deck

import "strings"

// ValidCard reports whether a card loaded from storage or an import feed
// is structurally fit for review: non-empty ID and both faces non-blank
// after trimming. Invalid cards are excluded from sessions but are never
// deleted by the study path.
func ValidCard(c Card) bool {
	if c.ID == "" {
		return false
	}
	if strings.TrimSpace(c.Front) == "" {
		return false
	}
	if strings.TrimSpace(c.Back) == "" {
		return false
	}
	return true
}

// NormalizeTitle trims a user-supplied title or category and collapses
// internal whitespace runs to single spaces.
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
