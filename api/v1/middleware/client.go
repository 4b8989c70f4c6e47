package middleware

import (
	"github.com/gin-gonic/gin"

	"domain_expiry/internal/clientid"
)

// ContextClientID is the gin context key holding the client id
const ContextClientID = "client_id"

// ClientID identifies the browser, issuing the client id cookie on first visit
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientid.Ensure(c.Writer, c.Request)
		c.Set(ContextClientID, id)
		c.Next()
	}
}

// GetClientID returns the client id set by ClientID
func GetClientID(c *gin.Context) string {
	return c.GetString(ContextClientID)
}
