// Package review implements spaced-repetition scheduling and the
// review queue: which knowledge points to drill, in what order, and
// when to show them again.
package review

import (
	"math"
	"time"
)

// Scoring weights. Mastery deficit dominates among non-due points,
// repeated mistakes add a saturating boost, and being due adds a flat
// bonus large enough that due points outrank comparable non-due ones.
const (
	masteryWeight = 10.0
	mistakeWeight = 5.0
	dueBonus      = 8.0
)

// PointState is the minimal snapshot of a knowledge point needed to
// score it. Kept separate from the persistence model so scoring stays
// pure and trivially testable.
type PointState struct {
	MasteryLevel float64
	MistakeCount int
	NextReviewAt *time.Time
}

// IsDue reports whether the point should be reviewed at the given
// time. A point with no schedule yet has never been reviewed and is
// always due.
func (s PointState) IsDue(now time.Time) bool {
	return s.NextReviewAt == nil || !s.NextReviewAt.After(now)
}

// Priority scores a knowledge point for queue ordering; higher means
// review sooner. Pure: equal inputs always produce equal scores.
//
// Mastery is clamped to [0,1] before use and a negative mistake count
// is treated as zero, so malformed stored data degrades the score
// instead of corrupting the ordering.
func Priority(s PointState, now time.Time) float64 {
	mastery := clamp01(s.MasteryLevel)
	mistakes := s.MistakeCount
	if mistakes < 0 {
		mistakes = 0
	}

	p := (1-mastery)*masteryWeight + math.Log1p(float64(mistakes))*mistakeWeight
	if s.IsDue(now) {
		p += dueBonus
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
