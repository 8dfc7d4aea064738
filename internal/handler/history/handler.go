package history

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/passmeter/internal/middleware"
	"github.com/jwalitptl/passmeter/internal/model"
	historyService "github.com/jwalitptl/passmeter/internal/service/history"
	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/httputil"
)

type Handler struct {
	service historyService.HistoryServicer
}

func NewHandler(service historyService.HistoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	history := r.Group("/history", middleware.ClientID())
	{
		history.GET("", h.List)
		history.POST("", h.Add)
		history.DELETE("", h.Clear)
	}
}

type listQuery struct {
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=1000"`
	Reveal bool `form:"reveal"`
}

func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(errors.BadRequest("invalid query", err))
		return
	}

	items, err := h.service.List(c.Request.Context(), clientID(c), q.Limit, q.Reveal)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) Add(c *gin.Context) {
	var req model.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	item, err := h.service.Record(c.Request.Context(), clientID(c), req.Password, req.AccountType)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithCreated(c, item)
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), clientID(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func clientID(c *gin.Context) uuid.UUID {
	id, _ := middleware.GetClientID(c)
	return id
}
