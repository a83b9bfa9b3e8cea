package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// ContentHandler editable home page
type ContentHandler struct {
	contentSvc service.ContentService
}

// NewContentHandler creates a ContentHandler
func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// Get current home page content
// GET /api/v1/content/home
func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.contentSvc.Get(c.Request.Context())
	if err != nil {
		h.handleContentError(c, err)
		return
	}

	response.OK(c, content)
}

// Save stores a new version
// POST /api/v1/content/home (PUT is kept as an alias)
func (h *ContentHandler) Save(c *gin.Context) {
	var req dto.HomePageContent
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	version, err := h.contentSvc.Save(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleContentError(c, err)
		return
	}

	response.OK(c, version)
}

// Reset stores the built-in default as a new version
// POST /api/v1/content/home/reset
func (h *ContentHandler) Reset(c *gin.Context) {
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	version, err := h.contentSvc.Reset(c.Request.Context(), callerID)
	if err != nil {
		h.handleContentError(c, err)
		return
	}

	response.OK(c, version)
}

// History recent versions, newest first
// GET /api/v1/content/home/history
func (h *ContentHandler) History(c *gin.Context) {
	versions, err := h.contentSvc.History(c.Request.Context())
	if err != nil {
		h.handleContentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": versions})
}

func (h *ContentHandler) handleContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidContent):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeContentInvalid, "home page content is invalid", err.Error())
	default:
		response.InternalError(c)
	}
}
