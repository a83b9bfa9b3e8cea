package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/pkg/debounce"
	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
	"github.com/faizm10/DressToImpress-sub000/pkg/mailer"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

// TokenBlacklist signed-out token ids
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Cache byte cache; GetBytes returns an error on miss
type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Deps external collaborators; Blacklist and Cache may be nil
type Deps struct {
	JWT       *jwt.Manager
	Blacklist TokenBlacklist
	Cache     Cache
	Blobs     storage.BlobStore
	Mailer    mailer.Mailer
	Debouncer *debounce.Debouncer
}

// Service aggregate of every service
type Service struct {
	Auth          AuthService
	Student       StudentService
	Attire        AttireService
	AttireRequest AttireRequestService
	Calendar      CalendarService
	Export        ExportService
	Content       ContentService
	Notification  NotificationService
	Maintenance   MaintenanceService
}

// NewService wires every service
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	deps Deps,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(cfg, deps.Mailer, logger)
	return &Service{
		Auth:          NewAuthService(cfg, repo, deps.JWT, deps.Blacklist, logger),
		Student:       NewStudentService(repo, deps.Blobs, logger),
		Attire:        NewAttireService(cfg, repo, deps.Blobs, logger),
		AttireRequest: NewAttireRequestService(cfg, repo, deps.Blobs, notification, deps.Debouncer, logger),
		Calendar:      NewCalendarService(cfg, repo, logger),
		Export:        NewExportService(repo, logger),
		Content:       NewContentService(cfg, repo, deps.Cache, logger),
		Notification:  notification,
		Maintenance:   NewMaintenanceService(cfg, repo, deps.Blobs, logger),
	}
}
