package models

// PracticeRecordModel is one graded translation attempt.
type PracticeRecordModel struct {
	Base
	UserID          string             `json:"user_id"          gorm:"type:char(36);index;not null"`
	PromptText      string             `json:"prompt_text"      gorm:"type:text;not null"`
	UserTranslation string             `json:"user_translation" gorm:"type:text;not null"`
	Score           int                `json:"score"`
	Feedback        string             `json:"feedback"         gorm:"type:text"`
	Errors          []ErrorRecordModel `json:"errors,omitempty" gorm:"foreignKey:PracticeID"`
}

func (PracticeRecordModel) TableName() string { return "practice_records" }

// ErrorRecordModel is one graded error within a practice attempt,
// stored together with its classification.
type ErrorRecordModel struct {
	Base
	UserID           string `json:"user_id"            gorm:"type:char(36);index;not null"`
	PracticeID       string `json:"practice_id"        gorm:"type:char(36);index;not null"`
	KnowledgePointID string `json:"knowledge_point_id" gorm:"type:char(36);index"`
	KeyPointSummary  string `json:"key_point_summary"  gorm:"size:255"`
	Explanation      string `json:"explanation"        gorm:"type:text"`
	Severity         string `json:"severity"           gorm:"size:16"`
	Category         string `json:"category"           gorm:"size:32;index"`
	Subcategory      string `json:"subcategory"        gorm:"size:64"`
}

func (ErrorRecordModel) TableName() string { return "error_records" }
