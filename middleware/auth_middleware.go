package middleware

import (
	"net/http"

	"complaint-portal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireSession sends visitors without a stored token back to the portal
// home, where the login form is shown.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !services.HasSession(sessions.Default(c)) {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
