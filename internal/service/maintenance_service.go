package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

// SweepResult outcome of one orphan sweep
type SweepResult struct {
	Scanned int
	Removed []string
}

// MaintenanceService background housekeeping
type MaintenanceService interface {
	// SweepOrphanBlobs removes attire images no live attire references
	// once they are older than the grace period.
	SweepOrphanBlobs(ctx context.Context) (*SweepResult, error)
}

type maintenanceService struct {
	repo   *repository.Repository
	blobs  storage.BlobStore
	grace  time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewMaintenanceService creates a MaintenanceService
func NewMaintenanceService(cfg *config.Config, repo *repository.Repository, blobs storage.BlobStore, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo:   repo,
		blobs:  blobs,
		grace:  cfg.Jobs.OrphanGracePeriod,
		logger: logger,
		now:    time.Now,
	}
}

func (s *maintenanceService) SweepOrphanBlobs(ctx context.Context) (*SweepResult, error) {
	objects, err := s.blobs.List(ctx, imagePrefix)
	if err != nil {
		s.logger.Error("list attire images failed", zap.Error(err))
		return nil, err
	}

	// listed before the references so an upload recorded in between is never orphaned
	referenced, err := s.repo.Attire.ListImagePaths(ctx)
	if err != nil {
		s.logger.Error("list referenced images failed", zap.Error(err))
		return nil, err
	}
	live := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		live[p] = struct{}{}
	}

	cutoff := s.now().Add(-s.grace)
	result := &SweepResult{Scanned: len(objects)}
	var orphans []string
	for _, obj := range objects {
		if _, ok := live[obj.Path]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Path)
	}

	if len(orphans) == 0 {
		s.logger.Debug("orphan sweep found nothing", zap.Int("scanned", result.Scanned))
		return result, nil
	}

	if err := s.blobs.Remove(ctx, orphans...); err != nil {
		s.logger.Error("remove orphan images failed", zap.Int("count", len(orphans)), zap.Error(err))
		return result, err
	}
	result.Removed = orphans

	s.logger.Info("orphan images removed",
		zap.Int("scanned", result.Scanned),
		zap.Int("removed", len(orphans)),
	)
	return result, nil
}
