package config

import (
	"github.com/gin-gonic/gin"

	"domain_expiry/internal/config"
	"domain_expiry/internal/httpx"
	"domain_expiry/internal/model"
)

// Handler serves the public dashboard configuration
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a new configuration handler
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// ThresholdsResponse holds the severity thresholds in days
type ThresholdsResponse struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
}

// Response is the public part of the configuration
type Response struct {
	APIURL            string             `json:"apiUrl"`
	RefreshIntervalMs int                `json:"refreshIntervalMs"`
	Thresholds        ThresholdsResponse `json:"thresholds"`
	Themes            []string           `json:"themes"`
	DateFormats       []string           `json:"dateFormats"`
}

// Get handles GET /api/v1/config
func (h *Handler) Get(c *gin.Context) {
	httpx.OK(c, Response{
		APIURL:            h.cfg.API.URL,
		RefreshIntervalMs: h.cfg.Refresh.IntervalMs,
		Thresholds: ThresholdsResponse{
			Red:    h.cfg.Thresholds.Red,
			Yellow: h.cfg.Thresholds.Yellow,
		},
		Themes:      model.Themes,
		DateFormats: model.DateFormats,
	})
}
