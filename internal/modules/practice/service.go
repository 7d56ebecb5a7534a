// Package practice persists graded translation attempts and keeps the
// per-learner knowledge points in sync with each new mistake.
package practice

import (
	"context"
	"errors"
	"time"

	"github.com/translearn/core/internal/models"
	"github.com/translearn/core/internal/modules/grading"
	"github.com/translearn/core/internal/modules/review"
	"github.com/translearn/core/internal/pkg/pagination"
	"github.com/translearn/core/internal/pkg/response"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("practice record not found")

// masteryDecayOnMistake shrinks mastery when a known point is missed
// again. Matches a failed review.
const masteryDecayOnMistake = 0.7

type Service struct {
	db     *gorm.DB
	grader *grading.Service
}

func NewService(db *gorm.DB, grader *grading.Service) *Service {
	return &Service{db: db, grader: grader}
}

// Submit grades one attempt and persists everything it produced: the
// practice record, its error records, and the touched knowledge
// points. Grading happens outside the transaction; only persistence is
// atomic.
func (s *Service) Submit(ctx context.Context, userID string, dto SubmitDTO) (*models.PracticeRecordModel, error) {
	result, err := s.grader.Grade(ctx, grading.GradeRequest{
		PromptText:      dto.PromptText,
		UserTranslation: dto.UserTranslation,
	})
	if err != nil {
		return nil, err
	}

	record := models.PracticeRecordModel{
		UserID:          userID,
		PromptText:      dto.PromptText,
		UserTranslation: dto.UserTranslation,
		Score:           result.Score,
		Feedback:        result.Feedback,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, graded := range result.Errors {
			point, err := s.touchKnowledgePoint(tx, userID, graded, now)
			if err != nil {
				return err
			}

			errRecord := models.ErrorRecordModel{
				UserID:           userID,
				PracticeID:       record.ID,
				KnowledgePointID: point.ID,
				KeyPointSummary:  graded.KeyPointSummary,
				Explanation:      graded.Explanation,
				Severity:         string(graded.Severity),
				Category:         string(graded.Category),
				Subcategory:      graded.Subcategory,
			}
			if err := tx.Create(&errRecord).Error; err != nil {
				return err
			}
			record.Errors = append(record.Errors, errRecord)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// touchKnowledgePoint finds or creates the knowledge point behind a
// graded error and records the new mistake against it: mistake count
// up, mastery decayed, and the point pulled back into review tomorrow.
func (s *Service) touchKnowledgePoint(tx *gorm.DB, userID string, graded grading.GradedError, now time.Time) (*models.KnowledgePointModel, error) {
	var point models.KnowledgePointModel
	err := tx.Where("user_id = ? AND summary = ?", userID, graded.KeyPointSummary).
		First(&point).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		point = models.KnowledgePointModel{
			UserID:      userID,
			Summary:     graded.KeyPointSummary,
			Category:    string(graded.Category),
			Subcategory: graded.Subcategory,
			EaseFactor:  2.5,
		}
	} else if err != nil {
		return nil, err
	}

	out := review.NextReview(now, review.ReviewInput{
		IntervalDays: point.IntervalDays,
		EaseFactor:   point.EaseFactor,
		Streak:       point.Streak,
		Grade:        review.GradeAgain,
	})

	point.MistakeCount++
	point.MasteryLevel *= masteryDecayOnMistake
	point.EaseFactor = out.EaseFactor
	point.IntervalDays = out.IntervalDays
	point.Streak = out.Streak
	point.NextReviewAt = &out.NextReviewAt
	if point.Category == "" {
		point.Category = string(graded.Category)
		point.Subcategory = graded.Subcategory
	}

	if err := tx.Save(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (s *Service) List(userID string, q pagination.Query) ([]models.PracticeRecordModel, response.Pagination, error) {
	tx := s.db.Model(&models.PracticeRecordModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	var records []models.PracticeRecordModel
	pag, err := pagination.Paginate(tx, q, &records)
	return records, pag, err
}

func (s *Service) GetByID(userID, id string) (*models.PracticeRecordModel, error) {
	var record models.PracticeRecordModel
	err := s.db.Preload("Errors").
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}
