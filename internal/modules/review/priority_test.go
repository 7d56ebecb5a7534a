package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestPriorityDuePointBeatsWellKnownNonDue(t *testing.T) {
	now := time.Now()

	weak := PointState{
		MasteryLevel: 0.1,
		MistakeCount: 8,
		NextReviewAt: ptrTime(now.Add(-time.Hour)),
	}
	strong := PointState{
		MasteryLevel: 0.9,
		MistakeCount: 1,
		NextReviewAt: ptrTime(now.Add(48 * time.Hour)),
	}

	assert.Greater(t, Priority(weak, now), Priority(strong, now))
}

func TestPriorityMonotoneInMastery(t *testing.T) {
	now := time.Now()
	future := ptrTime(now.Add(time.Hour))

	low := Priority(PointState{MasteryLevel: 0.2, MistakeCount: 3, NextReviewAt: future}, now)
	high := Priority(PointState{MasteryLevel: 0.8, MistakeCount: 3, NextReviewAt: future}, now)

	assert.Greater(t, low, high)
}

func TestPriorityMonotoneInMistakes(t *testing.T) {
	now := time.Now()
	future := ptrTime(now.Add(time.Hour))

	few := Priority(PointState{MasteryLevel: 0.5, MistakeCount: 1, NextReviewAt: future}, now)
	many := Priority(PointState{MasteryLevel: 0.5, MistakeCount: 10, NextReviewAt: future}, now)

	assert.Greater(t, many, few)
}

func TestPriorityMistakeTermSaturates(t *testing.T) {
	now := time.Now()
	future := ptrTime(now.Add(time.Hour))
	score := func(n int) float64 {
		return Priority(PointState{MasteryLevel: 0.5, MistakeCount: n, NextReviewAt: future}, now)
	}

	// Going 1 -> 2 moves the score more than going 100 -> 101.
	assert.Greater(t, score(2)-score(1), score(101)-score(100))
}

func TestPriorityDueBonusIsFlat(t *testing.T) {
	now := time.Now()
	base := PointState{MasteryLevel: 0.5, MistakeCount: 4}

	due := base
	due.NextReviewAt = ptrTime(now.Add(-time.Minute))
	notDue := base
	notDue.NextReviewAt = ptrTime(now.Add(time.Minute))

	assert.InDelta(t, dueBonus, Priority(due, now)-Priority(notDue, now), 1e-9)
}

func TestPriorityNeverScheduledIsDue(t *testing.T) {
	now := time.Now()
	s := PointState{MasteryLevel: 0.5}

	assert.True(t, s.IsDue(now))
	assert.Equal(t, Priority(s, now), Priority(PointState{
		MasteryLevel: 0.5,
		NextReviewAt: ptrTime(now.Add(-time.Hour)),
	}, now))
}

func TestPriorityClampsMalformedInputs(t *testing.T) {
	now := time.Now()
	future := ptrTime(now.Add(time.Hour))

	// Out-of-range mastery and negative mistakes collapse to the
	// clamped equivalents rather than producing weird scores.
	assert.Equal(t,
		Priority(PointState{MasteryLevel: 1.0, MistakeCount: 0, NextReviewAt: future}, now),
		Priority(PointState{MasteryLevel: 1.7, MistakeCount: -5, NextReviewAt: future}, now))
	assert.Equal(t,
		Priority(PointState{MasteryLevel: 0, NextReviewAt: future}, now),
		Priority(PointState{MasteryLevel: -2, NextReviewAt: future}, now))
}

func TestPriorityIsPure(t *testing.T) {
	now := time.Now()
	s := PointState{MasteryLevel: 0.33, MistakeCount: 7, NextReviewAt: ptrTime(now.Add(-time.Hour))}

	first := Priority(s, now)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Priority(s, now))
	}
}
