package models

import "time"

// ReviewLogModel is the append-only record of review sessions.
type ReviewLogModel struct {
	Base
	UserID           string    `json:"user_id"            gorm:"type:char(36);index;not null"`
	KnowledgePointID string    `json:"knowledge_point_id" gorm:"type:char(36);index;not null"`
	Grade            int       `json:"grade"`
	Priority         float64   `json:"priority"`
	IntervalDays     int       `json:"interval_days"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}

func (ReviewLogModel) TableName() string { return "review_logs" }
