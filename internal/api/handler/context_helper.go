package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/api/middleware"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// MustGetStaffID extracts the signed-in staff user id.
// On false a 401 has been written and the caller should return.
func MustGetStaffID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxStaffUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "not signed in")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "not signed in")
		return "", false
	}
	return s, true
}

// MustGetToken extracts the current token id and expiry
func MustGetToken(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.CtxTokenID)
	v, exists := c.Get(middleware.CtxTokenExpiry)
	if jti == "" || !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "not signed in")
		return "", time.Time{}, false
	}
	exp, ok := v.(time.Time)
	if !ok {
		response.Unauthorized(c, response.CodeUnauthenticated, "not signed in")
		return "", time.Time{}, false
	}
	return jti, exp, true
}

// bindError writes the standard 400 for a failed bind
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadParams, "invalid parameters", err.Error())
}
