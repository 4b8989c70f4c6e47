package preferences

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"domain_expiry/api/v1/middleware"
	"domain_expiry/internal/httpx"
	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
)

// Handler reads and writes the display preferences of the calling client
type Handler struct {
	provider prefs.Provider
}

// NewHandler creates a new preferences handler
func NewHandler(provider prefs.Provider) *Handler {
	return &Handler{provider: provider}
}

// UpdateRequest changes one or both preferences
type UpdateRequest struct {
	Theme      *string `json:"theme"`
	DateFormat *string `json:"dateFormat"`
}

// Get handles GET /api/v1/preferences
func (h *Handler) Get(c *gin.Context) {
	store := h.provider.Store(middleware.GetClientID(c))

	p, err := prefs.Load(c.Request.Context(), store)
	if err != nil {
		httpx.FailErr(c, httpx.ErrStorageError("failed to load preferences", err))
		return
	}

	httpx.OK(c, p)
}

// Update handles POST /api/v1/preferences
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	if req.Theme == nil && req.DateFormat == nil {
		httpx.FailErr(c, httpx.ErrParamMissing("theme or dateFormat is required"))
		return
	}
	if req.Theme != nil && !model.IsKnownTheme(*req.Theme) {
		httpx.FailErr(c, httpx.ErrParamInvalid(fmt.Sprintf("unknown theme %q", *req.Theme)).
			WithData(gin.H{"allowed": model.Themes}))
		return
	}
	if req.DateFormat != nil && !model.IsKnownDateFormat(*req.DateFormat) {
		httpx.FailErr(c, httpx.ErrParamInvalid(fmt.Sprintf("unknown date format %q", *req.DateFormat)).
			WithData(gin.H{"allowed": model.DateFormats}))
		return
	}

	ctx := c.Request.Context()
	store := h.provider.Store(middleware.GetClientID(c))

	if req.Theme != nil {
		if err := store.Set(ctx, model.PrefKeyTheme, *req.Theme); err != nil {
			httpx.FailErr(c, httpx.ErrStorageError("failed to save theme", err))
			return
		}
	}
	if req.DateFormat != nil {
		if err := store.Set(ctx, model.PrefKeyDateFormat, *req.DateFormat); err != nil {
			httpx.FailErr(c, httpx.ErrStorageError("failed to save date format", err))
			return
		}
	}

	p, err := prefs.Load(ctx, store)
	if err != nil {
		httpx.FailErr(c, httpx.ErrStorageError("failed to load preferences", err))
		return
	}

	httpx.OKMsg(c, "preferences saved", p)
}
