// Package health exposes liveness and dependency checks.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/translearn/core/internal/pkg/redis"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
	rc *pkgredis.Client
}

func NewHandler(db *gorm.DB, rc *pkgredis.Client) *Handler {
	return &Handler{db: db, rc: rc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.ping)
	rg.GET("/health", h.health)
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	dbOK := true
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbOK = false
	}

	redisOK := h.rc.Raw().Ping(ctx).Err() == nil

	status := http.StatusOK
	if !dbOK || !redisOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"database": dbOK,
		"redis":    redisOK,
	})
}
