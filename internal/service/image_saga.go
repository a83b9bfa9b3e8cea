package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

// ErrImageUploadFailed the blob store rejected the image
var ErrImageUploadFailed = errors.New("image upload failed")

type sagaState int

const (
	sagaPending sagaState = iota
	sagaUploaded
	sagaRecorded
	sagaRolledBack
)

func (s sagaState) String() string {
	switch s {
	case sagaPending:
		return "pending"
	case sagaUploaded:
		return "uploaded"
	case sagaRecorded:
		return "recorded"
	case sagaRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// imageSaga uploads a blob, then records the row that points at it.
// A failed record removes the blob again.
//
//	pending ──upload──▶ uploaded ──record──▶ recorded
//	                        │
//	                        └──record fails──▶ rolled_back
type imageSaga struct {
	blobs  storage.BlobStore
	logger *zap.Logger
	path   string
	state  sagaState
}

func newImageSaga(blobs storage.BlobStore, logger *zap.Logger, path string) *imageSaga {
	return &imageSaga{blobs: blobs, logger: logger, path: path}
}

func (s *imageSaga) Upload(ctx context.Context, body []byte) error {
	if s.state != sagaPending {
		return fmt.Errorf("image saga: upload in state %s", s.state)
	}
	if err := s.blobs.Upload(ctx, s.path, body, imageContentType); err != nil {
		s.logger.Error("upload image failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
	}
	s.state = sagaUploaded
	return nil
}

// Record runs the metadata write; on failure the uploaded blob is removed
func (s *imageSaga) Record(ctx context.Context, write func() error) error {
	if s.state != sagaUploaded {
		return fmt.Errorf("image saga: record in state %s", s.state)
	}
	if err := write(); err != nil {
		s.rollback(ctx)
		return err
	}
	s.state = sagaRecorded
	return nil
}

func (s *imageSaga) rollback(ctx context.Context) {
	// the request context may already be cancelled
	ctx = context.WithoutCancel(ctx)
	if err := s.blobs.Remove(ctx, s.path); err != nil {
		s.logger.Error("remove orphaned image failed",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}
	s.state = sagaRolledBack
}

func (s *imageSaga) State() sagaState {
	return s.state
}
