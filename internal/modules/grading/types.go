// Package grading turns a Chinese prompt plus the learner's English
// translation into a structured grade: a 0-100 score, overall
// feedback, and a classified list of errors.
package grading

import "github.com/translearn/core/internal/modules/grading/classifier"

// GradeRequest is one translation attempt to grade.
type GradeRequest struct {
	PromptText      string `json:"prompt_text"`
	UserTranslation string `json:"user_translation"`
}

// GradedError is one classified error from the grader.
type GradedError struct {
	KeyPointSummary string              `json:"key_point_summary"`
	Explanation     string              `json:"explanation"`
	Severity        classifier.Severity `json:"severity"`
	Category        classifier.Category `json:"category"`
	Subcategory     string              `json:"subcategory"`
}

// GradeResult is the full outcome of grading one attempt.
type GradeResult struct {
	Score    int           `json:"score"`
	Feedback string        `json:"feedback"`
	Errors   []GradedError `json:"errors"`
}
