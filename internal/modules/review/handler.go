package review

import (
	"errors"
	"strconv"

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
	g := rg.Group("/review", authMW)

	g.GET("/queue", h.queue)
	g.GET("/due-count", h.dueCount)
	g.POST("/:id", h.submit)
}

type submitReviewDTO struct {
	Grade *int `json:"grade" binding:"required"`
}

func (h *Handler) queue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.svc.DueQueue(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) dueCount(c *gin.Context) {
	count, err := h.svc.DueCountCached(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) submit(c *gin.Context) {
	var dto submitReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if *dto.Grade < GradeAgain || *dto.Grade > GradeEasy {
		response.BadRequest(c, "grade 必須在 0 到 3 之間")
		return
	}

	result, err := h.svc.SubmitReview(middleware.CurrentUserID(c), c.Param("id"), *dto.Grade)
	if err != nil {
		if errors.Is(err, ErrPointNotFound) {
			response.NotFoundMsg(c, "這個知識點不存在喔")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}
