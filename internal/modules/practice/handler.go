package practice

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/translearn/core/internal/middleware"
	"github.com/translearn/core/internal/modules/grading"
	"github.com/translearn/core/internal/pkg/pagination"
	"github.com/translearn/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/practices", authMW)

	g.POST("", h.submit)
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.svc.Submit(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		switch {
		case errors.Is(err, grading.ErrEmptyRequest):
			response.BadRequest(c, "題目和翻譯都不能是空的")
		case errors.Is(err, grading.ErrNoProvider):
			response.InternalError(c, err)
		default:
			response.BadGateway(c, err.Error())
		}
		return
	}
	response.Created(c, record)
}

func (h *Handler) list(c *gin.Context) {
	records, pag, err := h.svc.List(middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, records, pag)
}

func (h *Handler) getByID(c *gin.Context) {
	record, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			response.NotFoundMsg(c, "這筆練習紀錄不存在喔")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, record)
}
