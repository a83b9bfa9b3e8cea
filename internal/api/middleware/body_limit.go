package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// BodyLimit caps request bodies at maxBytes (image uploads included)
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
