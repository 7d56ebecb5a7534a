package app

import (
	"github.com/gin-gonic/gin"
	"github.com/translearn/core/internal/middleware"
	"github.com/translearn/core/internal/modules/auth/user"
	"github.com/translearn/core/internal/modules/grading"
	"github.com/translearn/core/internal/modules/health"
	"github.com/translearn/core/internal/modules/knowledge"
	"github.com/translearn/core/internal/modules/practice"
	"github.com/translearn/core/internal/modules/review"
	"github.com/translearn/core/internal/modules/stats"
	pkgredis "github.com/translearn/core/internal/pkg/redis"
	"github.com/translearn/core/internal/pkg/response"
	"github.com/translearn/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "translearn-core",
		"version": "1.0.0",
		"message": "每天翻一句，英文不生鏽 ✎",
	}
	r.GET("/", func(c *gin.Context) { response.OK(c, appInfo) })

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(rc.Raw()))
	api.GET("", func(c *gin.Context) { response.OK(c, appInfo) })

	// Shared services
	taskSvc := taskqueue.NewService(rc)
	gradingSvc := grading.NewService(a.cfg.AI)
	reviewSvc := review.NewService(db, rc)

	health.NewHandler(db, rc).RegisterRoutes(api)
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
	practice.NewHandler(practice.NewService(db, gradingSvc)).RegisterRoutes(api, authMW)
	review.NewHandler(reviewSvc).RegisterRoutes(api, authMW)
	knowledge.NewHandler(knowledge.NewService(db), reviewSvc).RegisterRoutes(api, authMW)
	stats.NewHandler(stats.NewService(db, taskSvc, a.logger)).RegisterRoutes(api, authMW)
}
