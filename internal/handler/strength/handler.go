package strength

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/passmeter/internal/middleware"
	"github.com/jwalitptl/passmeter/internal/model"
	strengthService "github.com/jwalitptl/passmeter/internal/service/strength"
	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/httputil"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

type Handler struct {
	service strengthService.StrengthServicer
}

func NewHandler(service strengthService.StrengthServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analyze", h.Analyze)
	r.POST("/suggest", h.Suggest)
	r.GET("/policies", h.Policies)
	r.POST("/generate", h.Generate)
	r.GET("/passphrase", h.Passphrase)
	r.POST("/passphrase/evaluate", h.EvaluatePassphrase)
	r.POST("/custom", h.Custom)
}

func (h *Handler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	httputil.RespondWithSuccess(c, h.service.Analyze(req.Password, req.AccountType))
}

func (h *Handler) Suggest(c *gin.Context) {
	var req model.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	httputil.RespondWithSuccess(c, h.service.Suggest(req.Password, req.Score, req.AccountType))
}

func (h *Handler) Policies(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Policies())
}

func (h *Handler) Generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	password, err := h.service.Generate(req.Options())
	if err != nil {
		c.Error(builderError(err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"password": password})
}

func (h *Handler) Passphrase(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"passphrase": h.service.Passphrase()})
}

func (h *Handler) EvaluatePassphrase(c *gin.Context) {
	var req model.EvaluatePassphraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	httputil.RespondWithSuccess(c, h.service.EvaluatePassphrase(req.Passphrase))
}

func (h *Handler) Custom(c *gin.Context) {
	var req model.CustomPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindingError(err))
		return
	}

	password, err := h.service.Custom(req.Words)
	if err != nil {
		c.Error(builderError(err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"password": password})
}

func builderError(err error) error {
	if stderrors.Is(err, suggest.ErrInvalidLength) || stderrors.Is(err, suggest.ErrNoWords) {
		return errors.BadRequest(err.Error(), err)
	}
	return errors.Internal(err)
}
