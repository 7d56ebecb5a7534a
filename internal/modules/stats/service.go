// Package stats aggregates a learner's error history into pattern
// reports, either synchronously or as a Redis-backed background task.
package stats

import (
	"context"
	"errors"
	"time"

	"github.com/translearn/core/internal/models"
	"github.com/translearn/core/internal/modules/grading/classifier"
	"github.com/translearn/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TaskTypeErrorReport = "stats:error-report"

	// reportWindow bounds how far back a report looks; old mistakes say
	// little about the learner today.
	reportWindow  = 90 * 24 * time.Hour
	reportMaxRows = 5000
	taskTimeout   = 30 * time.Second
)

type Service struct {
	db      *gorm.DB
	taskSvc *taskqueue.Service
	log     *zap.Logger
}

func NewService(db *gorm.DB, taskSvc *taskqueue.Service, log *zap.Logger) *Service {
	return &Service{db: db, taskSvc: taskSvc, log: log}
}

// ErrorReport is the pattern analysis plus display names, ready for
// the client to render without knowing the category keys.
type ErrorReport struct {
	classifier.Report
	GeneratedAt time.Time     `json:"generated_at"`
	Categories  []categoryRow `json:"categories"`
}

type categoryRow struct {
	Category        classifier.Category `json:"category"`
	CategoryName    string              `json:"category_name"`
	Subcategory     string              `json:"subcategory"`
	SubcategoryName string              `json:"subcategory_name"`
	Count           int                 `json:"count"`
}

// Report builds an error-pattern report from the user's recent error
// records, synchronously.
func (s *Service) Report(userID string) (*ErrorReport, error) {
	since := time.Now().Add(-reportWindow)

	var rows []models.ErrorRecordModel
	if err := s.db.
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(reportMaxRows).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]classifier.ErrorRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, classifier.ErrorRecord{
			KeyPointSummary: row.KeyPointSummary,
			Explanation:     row.Explanation,
			Severity:        classifier.Severity(row.Severity),
		})
	}

	report := classifier.AnalyzePatterns(records)
	out := &ErrorReport{
		Report:      report,
		GeneratedAt: time.Now(),
	}
	for _, stat := range report.Counts {
		out.Categories = append(out.Categories, categoryRow{
			Category:        stat.Category,
			CategoryName:    classifier.CategoryName(stat.Category),
			Subcategory:     stat.Subcategory,
			SubcategoryName: classifier.SubcategoryName(stat.Subcategory),
			Count:           stat.Count,
		})
	}
	return out, nil
}

type reportPayload struct {
	UserID string `json:"user_id"`
}

// EnqueueReport schedules report generation in the background and
// returns the task handle. Repeated requests from the same user reuse
// the live task instead of piling up.
func (s *Service) EnqueueReport(ctx context.Context, userID string) (*taskqueue.Task, error) {
	task, err := s.taskSvc.Enqueue(ctx, TaskTypeErrorReport, reportPayload{UserID: userID}, userID)
	if err != nil {
		return nil, err
	}
	if task.Status == taskqueue.TaskPending {
		go s.runReportTask(task.ID, userID)
	}
	return task, nil
}

func (s *Service) runReportTask(taskID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	if err := s.taskSvc.SetRunning(ctx, taskID); err != nil {
		s.log.Warn("mark report task running failed",
			zap.String("task_id", taskID), zap.Error(err))
		return
	}

	report, err := s.Report(userID)
	if err != nil {
		s.log.Warn("error report generation failed",
			zap.String("task_id", taskID), zap.Error(err))
		_ = s.taskSvc.Fail(ctx, taskID, err)
		return
	}

	if err := s.taskSvc.Complete(ctx, taskID, report); err != nil {
		s.log.Warn("store report task result failed",
			zap.String("task_id", taskID), zap.Error(err))
	}
}

// GetTask loads a previously enqueued task.
func (s *Service) GetTask(ctx context.Context, id string) (*taskqueue.Task, error) {
	task, err := s.taskSvc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// IsTaskNotFound reports whether err means the task id is unknown.
func IsTaskNotFound(err error) bool {
	return errors.Is(err, taskqueue.ErrTaskNotFound)
}
