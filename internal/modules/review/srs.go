package review

import "time"

// Review grades. 0 is a blackout, 3 is an effortless recall.
const (
	GradeAgain = 0
	GradeHard  = 1
	GradeGood  = 2
	GradeEasy  = 3
)

const (
	minEaseFactor     = 1.3
	defaultEaseFactor = 2.5
	minIntervalDays   = 1
)

// ReviewInput is the scheduling state of a point before a review.
type ReviewInput struct {
	IntervalDays int
	EaseFactor   float64
	Streak       int
	Grade        int
}

// ReviewOutput is the state after applying one review.
type ReviewOutput struct {
	IntervalDays int
	EaseFactor   float64
	Streak       int
	NextReviewAt time.Time
}

// NextReview applies one SM-2 style review step. A failed recall
// resets the streak and schedules a retry tomorrow; successes grow the
// interval by the ease factor, with the first two successes pinned to
// short fixed intervals so new material gets seen again quickly.
func NextReview(now time.Time, in ReviewInput) ReviewOutput {
	grade := clampGrade(in.Grade)
	ef := in.EaseFactor
	if ef <= 0 {
		ef = defaultEaseFactor
	}

	out := ReviewOutput{EaseFactor: ef}

	if grade == GradeAgain {
		out.Streak = 0
		out.IntervalDays = minIntervalDays
		out.EaseFactor = maxFloat(ef-0.2, minEaseFactor)
		out.NextReviewAt = now.AddDate(0, 0, out.IntervalDays)
		return out
	}

	out.Streak = in.Streak + 1
	out.EaseFactor = maxFloat(adjustEase(ef, grade), minEaseFactor)

	switch out.Streak {
	case 1:
		out.IntervalDays = minIntervalDays
	case 2:
		out.IntervalDays = secondInterval(grade)
	default:
		prev := in.IntervalDays
		if prev < minIntervalDays {
			prev = minIntervalDays
		}
		next := float64(prev) * out.EaseFactor * gradeModifier(grade)
		out.IntervalDays = int(next)
		if out.IntervalDays < minIntervalDays {
			out.IntervalDays = minIntervalDays
		}
	}

	out.NextReviewAt = now.AddDate(0, 0, out.IntervalDays)
	return out
}

// adjustEase is the SM-2 ease update with grades remapped to 0..3:
// ef' = ef + (0.1 - (3-g)*(0.08 + (3-g)*0.02)).
func adjustEase(ef float64, grade int) float64 {
	q := float64(3 - grade)
	return ef + (0.1 - q*(0.08+q*0.02))
}

// secondInterval pins the second consecutive success to a short fixed
// interval so the growth curve starts from solid ground.
func secondInterval(grade int) int {
	switch grade {
	case GradeHard:
		return 3
	case GradeGood:
		return 5
	default:
		return 7
	}
}

// gradeModifier dampens growth on a hard recall and stretches it on an
// easy one.
func gradeModifier(grade int) float64 {
	switch grade {
	case GradeHard:
		return 0.8
	case GradeEasy:
		return 1.1
	default:
		return 1.0
	}
}

func clampGrade(g int) int {
	if g < GradeAgain {
		return GradeAgain
	}
	if g > GradeEasy {
		return GradeEasy
	}
	return g
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// UpdateMastery moves a mastery level toward 1 on success and decays
// it on failure. Output stays in [0,1].
func UpdateMastery(mastery float64, grade int) float64 {
	m := clamp01(mastery)
	switch clampGrade(grade) {
	case GradeAgain:
		return m * 0.7
	case GradeHard:
		return m + (1-m)*0.1
	case GradeGood:
		return m + (1-m)*0.2
	default:
		return m + (1-m)*0.3
	}
}
