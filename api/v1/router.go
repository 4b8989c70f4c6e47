package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"domain_expiry/api/v1/config"
	"domain_expiry/api/v1/middleware"
	"domain_expiry/api/v1/page"
	"domain_expiry/api/v1/preferences"
	appconfig "domain_expiry/internal/config"
	"domain_expiry/internal/httpx"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/web"
)

// Deps holds everything the routes need
type Deps struct {
	Config   *appconfig.Config
	Prefs    prefs.Provider
	Renderer *web.Renderer
	Socket   http.Handler
	Logger   *logrus.Entry
}

// SetupRouter sets up the page, Socket.IO and API v1 routes
func SetupRouter(r *gin.Engine, deps Deps) {
	logger := deps.Logger.WithField("component", "http")
	r.Use(middleware.Logger(logger))

	// Dashboard page
	pageHandler := page.NewHandler(deps.Renderer, deps.Prefs, deps.Logger)
	r.GET("/", middleware.ClientID(), pageHandler.Index)

	// Live sessions
	if deps.Socket != nil {
		r.Any("/socket.io/*any", gin.WrapH(deps.Socket))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", pingHandler)

		configHandler := config.NewHandler(deps.Config)
		v1.GET("/config", configHandler.Get)

		prefsHandler := preferences.NewHandler(deps.Prefs)
		prefsGroup := v1.Group("/preferences")
		prefsGroup.Use(middleware.ClientID())
		{
			prefsGroup.GET("", prefsHandler.Get)
			prefsGroup.POST("", prefsHandler.Update)
		}
	}

	r.NoRoute(notFoundHandler)
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// notFoundHandler answers unknown paths with the unified envelope
func notFoundHandler(c *gin.Context) {
	httpx.FailErr(c, httpx.ErrNotFound("route not found: "+c.Request.URL.Path))
}
