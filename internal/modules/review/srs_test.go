package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextReviewFailureResets(t *testing.T) {
	now := time.Now()
	out := NextReview(now, ReviewInput{
		IntervalDays: 30,
		EaseFactor:   2.5,
		Streak:       6,
		Grade:        GradeAgain,
	})

	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 1, out.IntervalDays)
	assert.InDelta(t, 2.3, out.EaseFactor, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 1), out.NextReviewAt)
}

func TestNextReviewEaseFloor(t *testing.T) {
	now := time.Now()

	out := NextReview(now, ReviewInput{EaseFactor: 1.35, Grade: GradeAgain})
	assert.Equal(t, minEaseFactor, out.EaseFactor)

	// Repeated hard recalls also cannot push ease below the floor.
	in := ReviewInput{IntervalDays: 5, EaseFactor: 1.31, Streak: 3, Grade: GradeHard}
	for i := 0; i < 10; i++ {
		res := NextReview(now, in)
		assert.GreaterOrEqual(t, res.EaseFactor, minEaseFactor)
		in.EaseFactor = res.EaseFactor
		in.IntervalDays = res.IntervalDays
		in.Streak = res.Streak
	}
}

func TestNextReviewFirstTwoSuccesses(t *testing.T) {
	now := time.Now()

	first := NextReview(now, ReviewInput{EaseFactor: 2.5, Grade: GradeGood})
	assert.Equal(t, 1, first.Streak)
	assert.Equal(t, 1, first.IntervalDays)

	second := NextReview(now, ReviewInput{
		IntervalDays: first.IntervalDays,
		EaseFactor:   first.EaseFactor,
		Streak:       first.Streak,
		Grade:        GradeGood,
	})
	assert.Equal(t, 2, second.Streak)
	assert.Equal(t, 5, second.IntervalDays)

	// Grade steers the second interval.
	assert.Equal(t, 3, NextReview(now, ReviewInput{Streak: 1, EaseFactor: 2.5, Grade: GradeHard}).IntervalDays)
	assert.Equal(t, 7, NextReview(now, ReviewInput{Streak: 1, EaseFactor: 2.5, Grade: GradeEasy}).IntervalDays)
}

func TestNextReviewGrowthAfterSecondSuccess(t *testing.T) {
	now := time.Now()
	in := ReviewInput{IntervalDays: 5, EaseFactor: 2.5, Streak: 2, Grade: GradeGood}

	out := NextReview(now, in)

	// ef stays 2.5 on a good recall, so 5 * 2.5 * 1.0 = 12 days.
	assert.Equal(t, 3, out.Streak)
	assert.InDelta(t, 2.5, out.EaseFactor, 1e-9)
	assert.Equal(t, 12, out.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 12), out.NextReviewAt)
}

func TestNextReviewGradeModifiers(t *testing.T) {
	now := time.Now()
	base := ReviewInput{IntervalDays: 10, EaseFactor: 2.0, Streak: 4}

	hard := base
	hard.Grade = GradeHard
	good := base
	good.Grade = GradeGood
	easy := base
	easy.Grade = GradeEasy

	assert.Less(t, NextReview(now, hard).IntervalDays, NextReview(now, good).IntervalDays)
	assert.Less(t, NextReview(now, good).IntervalDays, NextReview(now, easy).IntervalDays)
}

func TestNextReviewMinimumOneDay(t *testing.T) {
	now := time.Now()
	out := NextReview(now, ReviewInput{IntervalDays: 0, EaseFactor: 0, Streak: 5, Grade: GradeHard})

	assert.GreaterOrEqual(t, out.IntervalDays, 1)
	assert.True(t, out.NextReviewAt.After(now))
}

func TestNextReviewClampsGrade(t *testing.T) {
	now := time.Now()

	tooHigh := NextReview(now, ReviewInput{EaseFactor: 2.5, Grade: 99})
	easy := NextReview(now, ReviewInput{EaseFactor: 2.5, Grade: GradeEasy})
	assert.Equal(t, easy, tooHigh)

	tooLow := NextReview(now, ReviewInput{EaseFactor: 2.5, Grade: -7})
	again := NextReview(now, ReviewInput{EaseFactor: 2.5, Grade: GradeAgain})
	assert.Equal(t, again, tooLow)
}

func TestUpdateMastery(t *testing.T) {
	assert.InDelta(t, 0.35, UpdateMastery(0.5, GradeAgain), 1e-9)
	assert.InDelta(t, 0.55, UpdateMastery(0.5, GradeHard), 1e-9)
	assert.InDelta(t, 0.6, UpdateMastery(0.5, GradeGood), 1e-9)
	assert.InDelta(t, 0.65, UpdateMastery(0.5, GradeEasy), 1e-9)

	// Stays inside [0,1] even from junk input.
	assert.GreaterOrEqual(t, UpdateMastery(-3, GradeAgain), 0.0)
	assert.LessOrEqual(t, UpdateMastery(5, GradeEasy), 1.0)
}
