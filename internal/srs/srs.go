// Package srs implements the review scheduler: a small, deterministic
// interval/ease model where hard answers reset the interval to the same
// day, medium answers grow it by 1.5x and easy answers by ease*1.3.
// It is deliberately simpler than SM-2 or FSRS; the behavior (including
// the unbounded ease growth on easy answers) is kept as-is.
package srs

import (
	"math"
	"time"

	"github.com/lembra-app/lembra/internal/deck"
)

// Scheduling constants.
const (
	EaseFloor       = 1.3  // ease factor never drops below this
	hardEasePenalty = 0.2  // subtracted from ease on a hard answer
	medEasePenalty  = 0.15 // subtracted from ease on a medium answer
	easyEaseBonus   = 0.15 // added to ease on an easy answer, no cap
	medGrowth       = 1.5  // interval multiplier for medium answers
	easyGrowth      = 1.3  // extra multiplier on top of ease for easy answers
	firstMedDays    = 1    // first interval after a medium answer
	firstEasyDays   = 3    // first interval after an easy answer

	// GraduationDays is the interval above which a card graduates.
	GraduationDays = 21
)

// Result is the outcome of scheduling one answer.
type Result struct {
	// Interval is the next spacing in whole days. Zero means due again
	// the same day.
	Interval int

	// Ease is the updated ease factor, clamped to EaseFloor from below.
	Ease float64

	// NextReview is now plus Interval days.
	NextReview time.Time
}

// ComputeNextReview computes the next interval, ease factor and due time
// for a card answered with the given rating. It is a pure function of its
// arguments; the caller supplies the clock. Callers must pass a valid
// rating; anything else panics, as it indicates a caller bug rather than
// a recoverable condition.
//
// Rounding is math.Round, i.e. half away from zero.
func ComputeNextReview(rating deck.Rating, interval int, ease float64, now time.Time) Result {
	var nextInterval int
	newEase := ease

	switch rating {
	case deck.RatingHard:
		nextInterval = 0
		newEase = math.Max(EaseFloor, ease-hardEasePenalty)
	case deck.RatingMedium:
		if interval == 0 {
			nextInterval = firstMedDays
		} else {
			nextInterval = int(math.Round(float64(interval) * medGrowth))
		}
		newEase = math.Max(EaseFloor, ease-medEasePenalty)
	case deck.RatingEasy:
		if interval == 0 {
			nextInterval = firstEasyDays
		} else {
			nextInterval = int(math.Round(float64(interval) * ease * easyGrowth))
		}
		newEase = ease + easyEaseBonus
	default:
		panic("srs: invalid rating " + rating.String())
	}

	return Result{
		Interval:   nextInterval,
		Ease:       newEase,
		NextReview: now.Add(time.Duration(nextInterval) * 24 * time.Hour),
	}
}

// DeriveStatus maps a freshly computed interval to the card's status:
// graduated above 21 days, review for 1..21, learning otherwise.
// New is never returned; it exists only before the first answer.
func DeriveStatus(interval int) deck.Status {
	switch {
	case interval > GraduationDays:
		return deck.StatusGraduated
	case interval > 0:
		return deck.StatusReview
	default:
		return deck.StatusLearning
	}
}
