package knowledge

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/translearn/core/internal/middleware"
	"github.com/translearn/core/internal/modules/review"
	"github.com/translearn/core/internal/pkg/pagination"
	"github.com/translearn/core/internal/pkg/response"
)

type Handler struct {
	svc       *Service
	reviewSvc *review.Service
}

func NewHandler(svc *Service, reviewSvc *review.Service) *Handler {
	return &Handler{svc: svc, reviewSvc: reviewSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/knowledge-points", authMW)

	g.GET("", h.list)
	g.GET("/due", h.listDue)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	points, pag, err := h.svc.List(
		middleware.CurrentUserID(c),
		c.Query("category"),
		pagination.FromContext(c),
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, points, pag)
}

func (h *Handler) listDue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.reviewSvc.DuePoints(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) getByID(c *gin.Context) {
	point, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, point)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	point, err := h.svc.Create(middleware.CurrentUserID(c), dto)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(c, "這個知識點已經在追蹤了")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, point)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	point, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, point)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, ErrPointNotFound) {
		response.NotFoundMsg(c, "這個知識點不存在喔")
		return
	}
	response.InternalError(c, err)
}
