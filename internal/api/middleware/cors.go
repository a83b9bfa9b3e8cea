package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured front-end origins; "*" allows any origin without credentials
func CORS(allowOrigins []string) gin.HandlerFunc {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	cc.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	cc.MaxAge = 24 * time.Hour

	origins := make([]string, 0, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cors.New(cc)
		}
		origins = append(origins, strings.TrimRight(o, "/"))
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cors.New(cc)
}
