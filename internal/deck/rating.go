package deck

import (
	"encoding"
	"fmt"
)

// Rating is the user's assessment of a card after revealing the answer.
type Rating int

const (
	RatingHard   Rating = iota + 1 // not recalled; show again today
	RatingMedium                   // recalled with effort
	RatingEasy                     // recalled effortlessly
)

var (
	ratingNames = [...]string{
		RatingHard:   "hard",
		RatingMedium: "medium",
		RatingEasy:   "easy",
	}
	ratingByName = map[string]Rating{
		"hard":   RatingHard,
		"medium": RatingMedium,
		"easy":   RatingEasy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is one of the three ratings.
func (r Rating) IsValid() bool {
	return r >= RatingHard && r <= RatingEasy
}

// String returns the lowercase name of the rating.
// For invalid values it returns "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating converts user input ("hard", "medium", "easy") to a Rating.
func ParseRating(name string) (Rating, error) {
	if r, ok := ratingByName[name]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown rating %q (want hard, medium or easy)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
