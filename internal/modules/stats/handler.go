package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/translearn/core/internal/middleware"
	"github.com/translearn/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats", authMW)

	g.GET("/error-patterns", h.errorPatterns)
	g.POST("/error-patterns/generate", h.generateErrorPatterns)
	g.GET("/tasks/:id", h.getTask)
}

func (h *Handler) errorPatterns(c *gin.Context) {
	report, err := h.svc.Report(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

func (h *Handler) generateErrorPatterns(c *gin.Context) {
	task, err := h.svc.EnqueueReport(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"task_id": task.ID,
		"status":  task.Status,
	})
}

func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		if IsTaskNotFound(err) {
			response.NotFoundMsg(c, "任務不存在或已過期")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, task)
}
