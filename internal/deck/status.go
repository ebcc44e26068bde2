package deck

import (
	"encoding"
	"fmt"
)

// Status represents a card's review stage. It is recomputed from the
// interval after every answer; new is the pre-first-answer state only.
type Status int

const (
	StatusNew       Status = iota + 1 // never answered
	StatusLearning                    // interval 0, shown again same day
	StatusReview                      // interval 1..21 days
	StatusGraduated                   // interval above 21 days
)

var (
	statusNames = [...]string{
		StatusNew:       "new",
		StatusLearning:  "learning",
		StatusReview:    "review",
		StatusGraduated: "graduated",
	}
	statusByName = map[string]Status{
		"new":       StatusNew,
		"learning":  StatusLearning,
		"review":    StatusReview,
		"graduated": StatusGraduated,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Status(0)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

// IsValid reports whether s is one of the four card statuses.
func (s Status) IsValid() bool {
	return s >= StatusNew && s <= StatusGraduated
}

// String returns the lowercase name of the status ("new", "learning",
// "review", "graduated"). For invalid values it returns "Status(n)".
func (s Status) String() string {
	if s.IsValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a stored status name back into a Status.
func ParseStatus(name string) (Status, error) {
	if s, ok := statusByName[name]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("unknown card status %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid card status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
