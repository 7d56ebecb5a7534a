package app

import (
	"context"
	"fmt"
	"time"

	"github.com/translearn/core/internal/models"
	"github.com/translearn/core/internal/modules/review"
	pkgcron "github.com/translearn/core/internal/pkg/cron"
	pkgredis "github.com/translearn/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reviewLogMaxAge = 180 * 24 * time.Hour

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, rc *pkgredis.Client, logger *zap.Logger) {
	reviewSvc := review.NewService(db, rc)
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "refresh_due_counts",
		Description: "更新每位使用者的到期複習數量快取",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			var userIDs []string
			if err := db.Model(&models.KnowledgePointModel{}).
				Distinct("user_id").
				Pluck("user_id", &userIDs).Error; err != nil {
				cronLogger.Warn("載入使用者清單失敗", zap.Error(err))
				return err
			}

			refreshed := 0
			for _, userID := range userIDs {
				if _, err := reviewSvc.RefreshDueCount(ctx, userID); err != nil {
					cronLogger.Warn("更新到期數量快取失敗",
						zap.String("user_id", userID), zap.Error(err))
					continue
				}
				refreshed++
			}
			cronLogger.Info(fmt.Sprintf("到期數量快取更新完成，共 %d 位使用者", refreshed))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_review_logs",
		Description: "清理 180 天以上的複習紀錄",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := reviewSvc.PurgeOldLogs(reviewLogMaxAge)
			if err != nil {
				cronLogger.Warn("清理複習紀錄失敗", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("清理複習紀錄成功，共刪除 %d 條", deleted))
			return nil
		},
	})
}
