package middleware

import (
	"complaint-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 64

// RequestID tags every request with an id, reusing the caller's when it is
// short printable ASCII, and forwards it to the complaint API through the
// request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(services.RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(services.RequestIDHeader, id)
		c.Request = c.Request.WithContext(services.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}
