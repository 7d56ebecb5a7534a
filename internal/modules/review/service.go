package review

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/translearn/core/internal/models"
	"gorm.io/gorm"
)

var ErrPointNotFound = errors.New("knowledge point not found")

const (
	defaultQueueLimit = 20
	maxQueueLimit     = 100
	// queueScanCap bounds how many points we load before scoring. A
	// learner with more active points than this has bigger problems
	// than queue ordering.
	queueScanCap = 1000

	dueCountKeyPrefix = "tl:due_count:"
	dueCountTTL       = 2 * time.Hour
)

// DueCountCache is the Redis surface the due-count read-through needs.
type DueCountCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Service struct {
	db    *gorm.DB
	cache DueCountCache
}

func NewService(db *gorm.DB, cache DueCountCache) *Service {
	return &Service{db: db, cache: cache}
}

// QueueItem is one scored entry of the review queue.
type QueueItem struct {
	models.KnowledgePointModel
	Priority float64 `json:"priority"`
	IsDue    bool    `json:"is_due"`
}

// DueQueue returns the user's knowledge points ordered by review
// priority, highest first. Points scoring zero are dropped: a fully
// mastered, never-missed, not-due point has nothing to review.
func (s *Service) DueQueue(userID string, limit int) ([]QueueItem, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	if limit > maxQueueLimit {
		limit = maxQueueLimit
	}

	var points []models.KnowledgePointModel
	if err := s.db.
		Where("user_id = ?", userID).
		Limit(queueScanCap).
		Find(&points).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]QueueItem, 0, len(points))
	for _, p := range points {
		state := stateOf(p)
		score := Priority(state, now)
		if score <= 0 {
			continue
		}
		items = append(items, QueueItem{
			KnowledgePointModel: p,
			Priority:            score,
			IsDue:               state.IsDue(now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// DueCount returns how many of the user's points are due right now,
// straight from the database.
func (s *Service) DueCount(userID string) (int64, error) {
	var count int64
	now := time.Now()
	err := s.db.Model(&models.KnowledgePointModel{}).
		Where("user_id = ?", userID).
		Where("next_review_at IS NULL OR next_review_at <= ?", now).
		Count(&count).Error
	return count, err
}

func dueCountKey(userID string) string { return dueCountKeyPrefix + userID }

// DueCountCached serves the due count from Redis when the cron job has
// refreshed it recently, falling back to the database (and backfilling
// the cache) on a miss.
func (s *Service) DueCountCached(ctx context.Context, userID string) (int64, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, dueCountKey(userID)); err == nil {
			if count, ok := parseDueCount(val); ok {
				return count, nil
			}
		}
	}

	count, err := s.DueCount(userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, dueCountKey(userID), strconv.FormatInt(count, 10), dueCountTTL)
	}
	return count, nil
}

// RefreshDueCount recomputes one user's due count and stores it in the
// cache.
func (s *Service) RefreshDueCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.DueCount(userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, dueCountKey(userID), strconv.FormatInt(count, 10), dueCountTTL); err != nil {
			return count, err
		}
	}
	return count, nil
}

// parseDueCount interprets a cached value; anything that is not a
// non-negative integer counts as a miss.
func parseDueCount(val string) (int64, bool) {
	if val == "" {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// DuePoints returns the user's due points ordered by priority.
func (s *Service) DuePoints(userID string, limit int) ([]QueueItem, error) {
	items, err := s.DueQueue(userID, maxQueueLimit)
	if err != nil {
		return nil, err
	}
	due := items[:0]
	for _, item := range items {
		if item.IsDue {
			due = append(due, item)
		}
	}
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// ReviewResult is what a completed review hands back to the client.
type ReviewResult struct {
	Point        models.KnowledgePointModel `json:"point"`
	Grade        int                        `json:"grade"`
	IntervalDays int                        `json:"interval_days"`
	NextReviewAt time.Time                  `json:"next_review_at"`
}

// SubmitReview applies one graded review to a knowledge point: it
// reschedules the point, updates mastery and counters, and appends a
// review log entry. The whole update runs in one transaction.
func (s *Service) SubmitReview(userID, pointID string, grade int) (*ReviewResult, error) {
	grade = clampGrade(grade)

	var result *ReviewResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var point models.KnowledgePointModel
		if err := tx.Where("id = ? AND user_id = ?", pointID, userID).
			First(&point).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPointNotFound
			}
			return err
		}

		now := time.Now()
		priorityBefore := Priority(stateOf(point), now)

		out := NextReview(now, ReviewInput{
			IntervalDays: point.IntervalDays,
			EaseFactor:   point.EaseFactor,
			Streak:       point.Streak,
			Grade:        grade,
		})

		point.MasteryLevel = UpdateMastery(point.MasteryLevel, grade)
		point.EaseFactor = out.EaseFactor
		point.IntervalDays = out.IntervalDays
		point.Streak = out.Streak
		point.LastReviewAt = &now
		point.NextReviewAt = &out.NextReviewAt
		if grade == GradeAgain {
			point.MistakeCount++
		} else {
			point.CorrectCount++
		}

		if err := tx.Save(&point).Error; err != nil {
			return err
		}

		log := models.ReviewLogModel{
			UserID:           userID,
			KnowledgePointID: point.ID,
			Grade:            grade,
			Priority:         priorityBefore,
			IntervalDays:     out.IntervalDays,
			ReviewedAt:       now,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		result = &ReviewResult{
			Point:        point,
			Grade:        grade,
			IntervalDays: out.IntervalDays,
			NextReviewAt: out.NextReviewAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PurgeOldLogs hard-deletes review logs older than the cutoff and
// returns how many rows went away.
func (s *Service) PurgeOldLogs(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.Unscoped().
		Where("reviewed_at < ?", cutoff).
		Delete(&models.ReviewLogModel{})
	return res.RowsAffected, res.Error
}

func stateOf(p models.KnowledgePointModel) PointState {
	return PointState{
		MasteryLevel: p.MasteryLevel,
		MistakeCount: p.MistakeCount,
		NextReviewAt: p.NextReviewAt,
	}
}
