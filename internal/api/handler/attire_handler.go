package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// errImageTooLarge upload exceeded the configured size
var errImageTooLarge = errors.New("image too large")

// AttireHandler staff catalog management
type AttireHandler struct {
	attireSvc     service.AttireService
	maxUploadSize int64
}

// NewAttireHandler creates an AttireHandler
func NewAttireHandler(attireSvc service.AttireService, maxUploadSize int64) *AttireHandler {
	return &AttireHandler{attireSvc: attireSvc, maxUploadSize: maxUploadSize}
}

// readImage reads the "image" multipart part; a missing part returns nil
func (h *AttireHandler) readImage(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if h.maxUploadSize > 0 && fh.Size > h.maxUploadSize {
		return nil, errImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := io.Reader(f)
	if h.maxUploadSize > 0 {
		r = io.LimitReader(f, h.maxUploadSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if h.maxUploadSize > 0 && int64(len(data)) > h.maxUploadSize {
		return nil, errImageTooLarge
	}
	return data, nil
}

func (h *AttireHandler) imageError(c *gin.Context, err error) {
	if errors.Is(err, errImageTooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "image exceeds the upload size limit")
		return
	}
	response.BadRequest(c, response.CodeInvalidImage, "could not read the uploaded image")
}

// List staff catalog with every status
// GET /api/v1/attires
func (h *AttireHandler) List(c *gin.Context) {
	var req dto.AttireListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.attireSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleAttireError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get one attire
// GET /api/v1/attires/:id
func (h *AttireHandler) Get(c *gin.Context) {
	attire, err := h.attireSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleAttireError(c, err)
		return
	}

	response.OK(c, attire)
}

// Create multipart form with an "image" file
// POST /api/v1/attires
func (h *AttireHandler) Create(c *gin.Context) {
	var req dto.CreateAttireRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		h.imageError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	attire, err := h.attireSvc.Create(c.Request.Context(), &req, image, callerID)
	if err != nil {
		handleAttireError(c, err)
		return
	}

	response.Created(c, attire)
}

// Update multipart form; the "image" file is optional
// PATCH /api/v1/attires/:id
func (h *AttireHandler) Update(c *gin.Context) {
	var req dto.UpdateAttireRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		h.imageError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	attire, err := h.attireSvc.Update(c.Request.Context(), c.Param("id"), &req, image, callerID)
	if err != nil {
		handleAttireError(c, err)
		return
	}

	response.OK(c, attire)
}

// Delete removes the attire and its image
// DELETE /api/v1/attires/:id
func (h *AttireHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	if err := h.attireSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleAttireError(c, err)
		return
	}

	response.OK(c, nil)
}

// Categories sizes and categories per gender
// GET /api/v1/attires/categories
func (h *AttireHandler) Categories(c *gin.Context) {
	response.OK(c, h.attireSvc.Categories())
}

func handleAttireError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttireNotFound):
		response.NotFound(c, response.CodeAttireNotFound, "attire not found")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, response.CodeInvalidCategory, "category is not allowed for this gender")
	case errors.Is(err, service.ErrInvalidSize), errors.Is(err, service.ErrInvalidAttireStatus):
		response.BadRequest(c, response.CodeBadParams, err.Error())
	case errors.Is(err, service.ErrImageRequired):
		response.BadRequest(c, response.CodeInvalidImage, "an image is required")
	case errors.Is(err, service.ErrInvalidImage):
		response.BadRequest(c, response.CodeInvalidImage, "file is not a supported image (jpeg, png, gif)")
	case errors.Is(err, service.ErrImageUploadFailed):
		response.Error(c, http.StatusBadGateway, response.CodeImageUploadFailed, "image upload failed")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, response.CodeConflict, "the attire was changed by someone else, reload and retry")
	case pkgerrors.IsForeignKeyViolation(err):
		response.Conflict(c, response.CodeConflict, "the attire still has requests")
	default:
		response.InternalError(c)
	}
}
