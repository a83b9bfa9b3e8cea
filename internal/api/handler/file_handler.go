package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// FileHandler proxies stored attire images
type FileHandler struct {
	attireSvc service.AttireService
}

// NewFileHandler creates a FileHandler
func NewFileHandler(attireSvc service.AttireService) *FileHandler {
	return &FileHandler{attireSvc: attireSvc}
}

// Image streams an attire image; paths are immutable so responses cache forever
// GET /api/v1/files/*path
func (h *FileHandler) Image(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	rc, err := h.attireSvc.OpenImage(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			response.NotFound(c, response.CodeFileNotFound, "file not found")
			return
		}
		response.InternalError(c)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.DataFromReader(http.StatusOK, -1, "image/jpeg", rc, nil)
}
