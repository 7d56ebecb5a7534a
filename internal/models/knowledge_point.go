package models

import "time"

// KnowledgePointModel tracks a learner's grasp of one grammar or
// vocabulary point, plus its spaced-repetition schedule.
type KnowledgePointModel struct {
	Base
	UserID       string     `json:"user_id"       gorm:"type:char(36);index;not null"`
	Summary      string     `json:"summary"       gorm:"size:255;not null"`
	Category     string     `json:"category"      gorm:"size:32;index"`
	Subcategory  string     `json:"subcategory"   gorm:"size:64"`
	MasteryLevel float64    `json:"mastery_level" gorm:"default:0"`
	MistakeCount int        `json:"mistake_count" gorm:"default:0"`
	CorrectCount int        `json:"correct_count" gorm:"default:0"`
	EaseFactor   float64    `json:"ease_factor"   gorm:"default:2.5"`
	IntervalDays int        `json:"interval_days" gorm:"default:0"`
	Streak       int        `json:"streak"        gorm:"default:0"`
	LastReviewAt *time.Time `json:"last_review_at"`
	NextReviewAt *time.Time `json:"next_review_at"`
}

func (KnowledgePointModel) TableName() string { return "knowledge_points" }

// IsDueForReview reports whether the point should be offered for
// review now. An unset schedule counts as due.
func (m *KnowledgePointModel) IsDueForReview(now time.Time) bool {
	return m.NextReviewAt == nil || !m.NextReviewAt.After(now)
}
