package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// Context keys set by JWTAuth
const (
	CtxStaffUserID = "staff_user_id"
	CtxEmail       = "email"
	CtxTokenID     = "token_id"
	CtxTokenExpiry = "token_expiry"
)

// TokenBlacklist signed-out token lookup
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the Bearer access token.
// blacklist may be nil; a blacklist lookup error lets the request through.
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthenticated, "missing Authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, response.CodeUnauthenticated, "malformed Authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, response.CodeTokenExpired, "token expired")
			} else {
				response.Unauthorized(c, response.CodeUnauthenticated, "invalid token")
			}
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("token blacklist lookup failed", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, response.CodeTokenRevoked, "token has been signed out")
				c.Abort()
				return
			}
		}

		c.Set(CtxStaffUserID, claims.StaffUserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
