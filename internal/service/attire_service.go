package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

var (
	ErrAttireNotFound      = errors.New("attire not found")
	ErrInvalidCategory     = errors.New("category is not allowed for this gender")
	ErrInvalidAttireStatus = errors.New("invalid attire status")
	ErrInvalidSize         = errors.New("invalid size")
	ErrImageRequired       = errors.New("an image is required")
	ErrFileNotFound        = errors.New("file not found")
)

// AttireService catalog management
type AttireService interface {
	// Create uploads the image then inserts the row; the blob is removed if the insert fails
	Create(ctx context.Context, req *dto.CreateAttireRequest, image []byte, callerID string) (*dto.AttireResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttireResponse, error)
	List(ctx context.Context, req *dto.AttireListRequest) ([]dto.AttireResponse, int64, error)
	// ListPublic catalog shown to students, inactive items hidden
	ListPublic(ctx context.Context, req *dto.AttireListRequest) ([]dto.AttireResponse, int64, error)
	// Update changes metadata; a non-nil image replaces the old blob
	Update(ctx context.Context, id string, req *dto.UpdateAttireRequest, image []byte, callerID string) (*dto.AttireResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	Categories() dto.CategoriesResponse
	// OpenImage streams a stored attire image; the caller closes the reader
	OpenImage(ctx context.Context, path string) (io.ReadCloser, error)
}

type attireService struct {
	cfg    *config.Config
	repo   *repository.Repository
	blobs  storage.BlobStore
	logger *zap.Logger
}

// NewAttireService creates an AttireService
func NewAttireService(cfg *config.Config, repo *repository.Repository, blobs storage.BlobStore, logger *zap.Logger) AttireService {
	return &attireService{cfg: cfg, repo: repo, blobs: blobs, logger: logger}
}

// normalizeCatalog validates size, gender and category together
func normalizeCatalog(size, gender, category string) (string, string, string, error) {
	sz, err := rental.ParseSize(size)
	if err != nil {
		return "", "", "", ErrInvalidSize
	}
	g, err := rental.ParseGender(gender)
	if err != nil {
		return "", "", "", ErrInvalidCategory
	}
	c, err := rental.ParseCategory(g, category)
	if err != nil {
		return "", "", "", ErrInvalidCategory
	}
	return string(sz), string(g), c, nil
}

// ────────────────────── Create ──────────────────────

func (s *attireService) Create(ctx context.Context, req *dto.CreateAttireRequest, image []byte, callerID string) (*dto.AttireResponse, error) {
	if len(image) == 0 {
		return nil, ErrImageRequired
	}

	size, gender, category, err := normalizeCatalog(req.Size, req.Gender, req.Category)
	if err != nil {
		return nil, err
	}
	status := rental.AttireReadyForRent
	if req.Status != "" {
		if status, err = rental.ParseAttireStatus(req.Status); err != nil {
			return nil, ErrInvalidAttireStatus
		}
	}

	body, err := processImage(image, s.cfg.Storage.ImageWidth)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	attire := &model.Attire{
		Name:      name,
		Size:      size,
		Gender:    gender,
		Category:  category,
		ImagePath: imagePath(name),
		Status:    string(status),
	}
	attire.CreatedBy = &callerID
	attire.UpdatedBy = &callerID

	saga := newImageSaga(s.blobs, s.logger, attire.ImagePath)
	if err := saga.Upload(ctx, body); err != nil {
		return nil, err
	}
	if err := saga.Record(ctx, func() error {
		return s.repo.Attire.Create(ctx, attire)
	}); err != nil {
		s.logger.Error("create attire failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	resp := toAttireResponse(attire, s.blobs)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *attireService) GetByID(ctx context.Context, id string) (*dto.AttireResponse, error) {
	attire, err := s.repo.Attire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttireNotFound
		}
		s.logger.Error("load attire failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toAttireResponse(attire, s.blobs)
	return &resp, nil
}

func (s *attireService) List(ctx context.Context, req *dto.AttireListRequest) ([]dto.AttireResponse, int64, error) {
	return s.list(ctx, req, false)
}

func (s *attireService) ListPublic(ctx context.Context, req *dto.AttireListRequest) ([]dto.AttireResponse, int64, error) {
	return s.list(ctx, req, true)
}

func (s *attireService) list(ctx context.Context, req *dto.AttireListRequest, public bool) ([]dto.AttireResponse, int64, error) {
	filter := repository.AttireFilter{
		Query:    strings.TrimSpace(req.Q),
		Gender:   req.Gender,
		Category: req.Category,
		Size:     req.Size,
		Status:   req.Status,
	}
	if public {
		filter.Status = ""
		filter.ExcludeStatus = string(rental.AttireInactive)
	}

	attires, total, err := s.repo.Attire.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list attires failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AttireResponse, 0, len(attires))
	for i := range attires {
		resp := toAttireResponse(&attires[i], s.blobs)
		if public {
			resp.CreatedAt, resp.UpdatedAt = "", ""
		}
		list = append(list, resp)
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *attireService) Update(ctx context.Context, id string, req *dto.UpdateAttireRequest, image []byte, callerID string) (*dto.AttireResponse, error) {
	attire, err := s.repo.Attire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttireNotFound
		}
		s.logger.Error("load attire failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		attire.Name = strings.TrimSpace(*req.Name)
	}
	size, gender, category := attire.Size, attire.Gender, attire.Category
	if req.Size != nil {
		size = *req.Size
	}
	if req.Gender != nil {
		gender = *req.Gender
	}
	if req.Category != nil {
		category = *req.Category
	}
	if attire.Size, attire.Gender, attire.Category, err = normalizeCatalog(size, gender, category); err != nil {
		return nil, err
	}
	if req.Status != nil {
		st, err := rental.ParseAttireStatus(*req.Status)
		if err != nil {
			return nil, ErrInvalidAttireStatus
		}
		attire.Status = string(st)
	}
	attire.Version = req.Version
	attire.UpdatedBy = &callerID

	if len(image) == 0 {
		if err := s.repo.Attire.Update(ctx, attire); err != nil {
			return nil, err
		}
		resp := toAttireResponse(attire, s.blobs)
		return &resp, nil
	}

	body, err := processImage(image, s.cfg.Storage.ImageWidth)
	if err != nil {
		return nil, err
	}

	oldPath := attire.ImagePath
	attire.ImagePath = imagePath(attire.Name)
	saga := newImageSaga(s.blobs, s.logger, attire.ImagePath)
	if err := saga.Upload(ctx, body); err != nil {
		return nil, err
	}
	if err := saga.Record(ctx, func() error {
		return s.repo.Attire.Update(ctx, attire)
	}); err != nil {
		return nil, err
	}

	// the row now points at the new blob
	if oldPath != "" {
		if err := s.blobs.Remove(ctx, oldPath); err != nil {
			s.logger.Warn("remove replaced image failed", zap.String("path", oldPath), zap.Error(err))
		}
	}

	resp := toAttireResponse(attire, s.blobs)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attireService) Delete(ctx context.Context, id string, callerID string) error {
	attire, err := s.repo.Attire.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttireNotFound
		}
		return err
	}

	if err := s.repo.Attire.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete attire failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if attire.ImagePath != "" {
		if err := s.blobs.Remove(ctx, attire.ImagePath); err != nil {
			s.logger.Warn("remove attire image failed",
				zap.String("id", id),
				zap.String("path", attire.ImagePath),
				zap.Error(err),
			)
		}
	}
	return nil
}

// ────────────────────── Categories ──────────────────────

func (s *attireService) Categories() dto.CategoriesResponse {
	resp := dto.CategoriesResponse{
		Sizes:      make([]string, 0, len(rental.Sizes)),
		Categories: make(map[string][]string, len(rental.Categories)),
	}
	for _, sz := range rental.Sizes {
		resp.Sizes = append(resp.Sizes, string(sz))
	}
	for g, cats := range rental.Categories {
		resp.Categories[string(g)] = append([]string(nil), cats...)
	}
	return resp
}

// ────────────────────── OpenImage ──────────────────────

func (s *attireService) OpenImage(ctx context.Context, path string) (io.ReadCloser, error) {
	if !isImagePath(path) {
		return nil, ErrFileNotFound
	}
	rc, err := s.blobs.Download(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return rc, nil
}
