package page

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"domain_expiry/api/v1/middleware"
	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/httpx"
	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/theme"
	"domain_expiry/internal/web"
	"domain_expiry/internal/ws"
)

// Renderer writes the page; *web.Renderer implements it
type Renderer interface {
	RenderIndex(w io.Writer, data web.PageData) error
}

// Handler serves the dashboard page
type Handler struct {
	renderer Renderer
	provider prefs.Provider
	logger   *logrus.Entry
}

// NewHandler creates a new page handler
func NewHandler(renderer Renderer, provider prefs.Provider, logger *logrus.Entry) *Handler {
	return &Handler{
		renderer: renderer,
		provider: provider,
		logger:   logger.WithField("component", "page"),
	}
}

// Index handles GET /
// The theme is resolved server-side so the first paint already uses it.
func (h *Handler) Index(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	p, err := prefs.Load(c.Request.Context(), h.provider.Store(clientID))
	if err != nil {
		h.logger.WithError(err).WithField("client", clientID).Warn("Preferences unavailable, using defaults")
		p = model.DefaultPreferences()
	}

	pref := theme.Normalize(p.Theme)
	format := p.DateFormat
	if !model.IsKnownDateFormat(format) {
		format = model.DefaultDateFormat
	}

	// render fully before writing so a failure never leaves a partial page
	var buf bytes.Buffer
	err = h.renderer.RenderIndex(&buf, web.PageData{
		ClientID:    clientID,
		Mode:        theme.Resolve(pref, theme.SchemeIsDark(c.GetHeader(ws.SchemeHintHeader))),
		Theme:       pref,
		DateFormat:  format,
		LoadingText: dashboard.LoadingText,
	})
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to render page", err))
		return
	}

	c.Header("Accept-CH", ws.SchemeHintHeader)
	c.Header("Vary", ws.SchemeHintHeader)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
