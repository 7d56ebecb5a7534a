// Package knowledge manages the learner's knowledge points directly:
// listing, manual creation, edits, and removal.
package knowledge

import (
	"errors"
	"strings"

	"github.com/translearn/core/internal/models"
	"github.com/translearn/core/internal/modules/grading/classifier"
	"github.com/translearn/core/internal/pkg/pagination"
	"github.com/translearn/core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	ErrPointNotFound = errors.New("knowledge point not found")
	ErrDuplicate     = errors.New("knowledge point already exists")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(userID string, category string, q pagination.Query) ([]models.KnowledgePointModel, response.Pagination, error) {
	tx := s.db.Model(&models.KnowledgePointModel{}).
		Where("user_id = ?", userID).
		Order("mastery_level ASC, mistake_count DESC")
	if category = strings.TrimSpace(category); category != "" {
		tx = tx.Where("category = ?", category)
	}

	var points []models.KnowledgePointModel
	pag, err := pagination.Paginate(tx, q, &points)
	return points, pag, err
}

func (s *Service) GetByID(userID, id string) (*models.KnowledgePointModel, error) {
	var point models.KnowledgePointModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&point).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointNotFound
		}
		return nil, err
	}
	return &point, nil
}

// Create adds a knowledge point by hand, for learners who want to
// track something the grader never flagged. The summary doubles as
// classification input.
func (s *Service) Create(userID string, dto CreateDTO) (*models.KnowledgePointModel, error) {
	summary := strings.TrimSpace(dto.Summary)

	var count int64
	if err := s.db.Model(&models.KnowledgePointModel{}).
		Where("user_id = ? AND summary = ?", userID, summary).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	res := classifier.Classify(classifier.ErrorRecord{
		KeyPointSummary: summary,
		Explanation:     dto.Note,
		Severity:        classifier.SeverityMajor,
	})

	point := models.KnowledgePointModel{
		UserID:      userID,
		Summary:     summary,
		Category:    string(res.Category),
		Subcategory: res.Subcategory,
		EaseFactor:  2.5,
	}
	if err := s.db.Create(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (s *Service) Update(userID, id string, dto UpdateDTO) (*models.KnowledgePointModel, error) {
	point, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(dto.Summary); v != "" {
		point.Summary = v
	}
	if dto.MasteryLevel != nil {
		m := *dto.MasteryLevel
		if m < 0 {
			m = 0
		}
		if m > 1 {
			m = 1
		}
		point.MasteryLevel = m
	}

	if err := s.db.Save(point).Error; err != nil {
		return nil, err
	}
	return point, nil
}

func (s *Service) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.KnowledgePointModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPointNotFound
	}
	return nil
}
