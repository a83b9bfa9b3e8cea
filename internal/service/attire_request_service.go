package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/pkg/debounce"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

var (
	ErrRequestNotFound   = errors.New("attire request not found")
	ErrRequestOverlap    = errors.New("the attire is already booked for part of this period")
	ErrRequestLocked     = errors.New("the request can only be changed once it is returned or the student is inactive")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrInvalidDate       = errors.New("dates must be formatted YYYY-MM-DD")
	ErrAvailabilityRange = errors.New("availability window must not exceed 366 days")
)

// maxAvailabilityDays upper bound on one availability query
const maxAvailabilityDays = 366

// AttireRequestService bookings: create, list, status, buffer, switch, delete, availability
type AttireRequestService interface {
	Create(ctx context.Context, req *dto.CreateAttireRequestRequest, callerID string) (*dto.AttireRequestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttireRequestResponse, error)
	List(ctx context.Context, req *dto.AttireRequestListRequest) ([]dto.AttireRequestResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateStatusRequest, callerID string) (*dto.AttireRequestResponse, error)
	// UpdateBuffer writes immediately, or after the debounce window when one is configured
	UpdateBuffer(ctx context.Context, id string, req *dto.UpdateBufferRequest, callerID string) (*dto.BufferUpdateResponse, error)
	SwitchAttire(ctx context.Context, id string, req *dto.SwitchAttireRequest, callerID string) (*dto.AttireRequestResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	Availability(ctx context.Context, attireID string, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type attireRequestService struct {
	cfg          *config.Config
	repo         *repository.Repository
	blobs        storage.BlobStore
	notification NotificationService
	debouncer    *debounce.Debouncer
	buffers      *bufferQueue
	logger       *zap.Logger
}

// NewAttireRequestService creates an AttireRequestService; debouncer may be nil
func NewAttireRequestService(
	cfg *config.Config,
	repo *repository.Repository,
	blobs storage.BlobStore,
	notification NotificationService,
	debouncer *debounce.Debouncer,
	logger *zap.Logger,
) AttireRequestService {
	if debouncer == nil {
		debouncer = debounce.New(0)
	}
	return &attireRequestService{
		cfg:          cfg,
		repo:         repo,
		blobs:        blobs,
		notification: notification,
		debouncer:    debouncer,
		buffers:      newBufferQueue(),
		logger:       logger,
	}
}

func (s *attireRequestService) load(ctx context.Context, id string) (*model.AttireRequest, error) {
	r, err := s.repo.AttireRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("load attire request failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return r, nil
}

// checkOverlap locks the attire row and rejects candidate when a blocking booking
// of the same attire overlaps its held window. Must run inside a transaction.
func (s *attireRequestService) checkOverlap(ctx context.Context, txRepo *repository.Repository, candidate rental.Booking) error {
	if _, err := txRepo.Attire.LockByID(ctx, candidate.AttireID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttireNotFound
		}
		return err
	}
	if !candidate.Status.Blocks() {
		return nil
	}

	existing, err := txRepo.AttireRequest.ListByAttire(ctx, candidate.AttireID)
	if err != nil {
		return err
	}
	if other, ok := rental.FindConflict(candidate, toBookings(existing)); ok {
		s.logger.Info("booking rejected, overlap",
			zap.String("attire_id", candidate.AttireID),
			zap.String("conflicts_with", other.ID),
		)
		return fmt.Errorf("%w (request %s, %s to %s)", ErrRequestOverlap,
			other.ID, rental.FormatDate(other.Start), rental.FormatDate(other.BufferUntil()))
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *attireRequestService) Create(ctx context.Context, req *dto.CreateAttireRequestRequest, callerID string) (*dto.AttireRequestResponse, error) {
	start, err := rental.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := rental.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	status := rental.StatusRequested
	if req.Status != "" {
		if status, err = rental.ParseStatus(req.Status); err != nil {
			return nil, ErrInvalidStatus
		}
	}

	var buffer *int
	switch {
	case req.BufferDays != nil:
		b := rental.NormalizeBuffer(req.BufferDays)
		buffer = &b
	case s.cfg.Rental.DefaultBufferDays != rental.DefaultBufferDays:
		b := s.cfg.Rental.DefaultBufferDays
		buffer = &b
	}

	row := &model.AttireRequest{
		StudentID:  req.StudentID,
		AttireID:   req.AttireID,
		StartDate:  start,
		EndDate:    end,
		Status:     string(status),
		BufferDays: buffer,
		Notes:      req.Notes,
	}
	// self-service submissions have no staff caller
	if callerID != "" {
		row.CreatedBy = &callerID
		row.UpdatedBy = &callerID
	}

	err = inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if _, err := txRepo.Student.GetByID(ctx, req.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if err := s.checkOverlap(ctx, txRepo, toBooking(row)); err != nil {
			return err
		}
		if err := txRepo.AttireRequest.Create(ctx, row); err != nil {
			if pkgerrors.IsForeignKeyViolation(err) {
				return ErrStudentNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create attire request failed", zap.Error(err))
		}
		return nil, err
	}

	created, err := s.load(ctx, row.AttireRequestID)
	if err != nil {
		resp := toAttireRequestResponse(row, s.blobs)
		return &resp, nil
	}
	resp := toAttireRequestResponse(created, s.blobs)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *attireRequestService) GetByID(ctx context.Context, id string) (*dto.AttireRequestResponse, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAttireRequestResponse(r, s.blobs)
	resp.BufferConflict = s.buffers.conflicted(id)
	return &resp, nil
}

func (s *attireRequestService) List(ctx context.Context, req *dto.AttireRequestListRequest) ([]dto.AttireRequestResponse, int64, error) {
	filter, err := requestFilter(req.Status, req.StudentID, req.AttireID, req.From, req.To)
	if err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.AttireRequest.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list attire requests failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AttireRequestResponse, 0, len(rows))
	for i := range rows {
		list = append(list, toAttireRequestResponse(&rows[i], s.blobs))
	}
	return list, total, nil
}

// requestFilter validates query filters shared by list, calendar and export
func requestFilter(status, studentID, attireID, from, to string) (repository.AttireRequestFilter, error) {
	filter := repository.AttireRequestFilter{StudentID: studentID, AttireID: attireID}
	if status != "" {
		st, err := rental.ParseStatus(status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = string(st)
	}
	if from != "" {
		d, err := rental.ParseDate(from)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.From = &d
	}
	if to != "" {
		d, err := rental.ParseDate(to)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.To = &d
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, ErrInvalidDateRange
	}
	return filter, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *attireRequestService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateStatusRequest, callerID string) (*dto.AttireRequestResponse, error) {
	status, err := rental.ParseStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := toBooking(r).Status

	r.Status = string(status)
	r.Version = req.Version
	r.UpdatedBy = &callerID

	err = inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		// reactivating a cancelled booking must not collide with newer ones
		if !previous.Blocks() && status.Blocks() {
			if err := s.checkOverlap(ctx, txRepo, toBooking(r)); err != nil {
				return err
			}
		}
		return txRepo.AttireRequest.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("request status changed",
		zap.String("id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	if status == rental.StatusWaitingForPickup && previous != status && s.cfg.Feature.NotifyOnStatusChange {
		if err := s.notification.NotifyReadyForPickup(ctx, r); err != nil {
			s.logger.Warn("pickup notification failed", zap.String("id", id), zap.Error(err))
		}
	}

	resp := toAttireRequestResponse(r, s.blobs)
	return &resp, nil
}

// ────────────────────── UpdateBuffer ──────────────────────

func (s *attireRequestService) UpdateBuffer(ctx context.Context, id string, req *dto.UpdateBufferRequest, callerID string) (*dto.BufferUpdateResponse, error) {
	days := rental.NormalizeBuffer(req.BufferDays)

	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Version != req.Version {
		// an edit made while an earlier one is still queued carries the version that write will produce
		if v, ok := s.buffers.pendingVersion(id); !ok || v != req.Version || v != r.Version+1 {
			return nil, pkgerrors.ErrOptimisticLock
		}
	}

	grows := days > toBooking(r).Buffer()
	r.BufferDays = &days
	r.UpdatedBy = &callerID
	next := r.Version + 1

	apply := func(ctx context.Context) error {
		return inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
			if grows {
				if err := s.checkOverlap(ctx, txRepo, toBooking(r)); err != nil {
					return err
				}
			}
			return txRepo.AttireRequest.Update(ctx, r)
		})
	}

	if !s.debouncer.Enabled() {
		if err := apply(ctx); err != nil {
			return nil, err
		}
		s.buffers.clear(id)
		return bufferResponse(r, r.Version, false), nil
	}

	if grows {
		// reject now; the deferred write checks again under the attire lock
		err := inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
			return s.checkOverlap(ctx, txRepo, toBooking(r))
		})
		if err != nil {
			return nil, err
		}
	}

	resp := bufferResponse(r, next, true)
	s.buffers.queue(id, next)
	resp.Queued = s.debouncer.Trigger(id, func() {
		// deferred writes outlive the request
		err := apply(context.WithoutCancel(ctx))
		s.buffers.settle(id, next, err)
		if err != nil {
			s.logger.Warn("debounced buffer write failed",
				zap.String("id", id),
				zap.Int("buffer_days", days),
				zap.Error(err),
			)
		}
	})
	return resp, nil
}

func bufferResponse(r *model.AttireRequest, version int, queued bool) *dto.BufferUpdateResponse {
	b := toBooking(r)
	return &dto.BufferUpdateResponse{
		ID:          r.AttireRequestID,
		BufferDays:  b.Buffer(),
		BufferUntil: rental.FormatDate(b.BufferUntil()),
		Version:     version,
		Queued:      queued,
	}
}

// bufferQueue remembers debounced buffer writes that have not landed yet,
// and requests whose last deferred write was rejected.
type bufferQueue struct {
	mu        sync.Mutex
	pending   map[string]int
	conflicts map[string]bool
}

func newBufferQueue() *bufferQueue {
	return &bufferQueue{pending: make(map[string]int), conflicts: make(map[string]bool)}
}

func (q *bufferQueue) queue(id string, version int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[id] = version
	delete(q.conflicts, id)
}

func (q *bufferQueue) pendingVersion(id string) (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.pending[id]
	return v, ok
}

func (q *bufferQueue) settle(id string, version int, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[id] == version {
		delete(q.pending, id)
	}
	if err != nil {
		q.conflicts[id] = true
	}
}

func (q *bufferQueue) clear(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
	delete(q.conflicts, id)
}

func (q *bufferQueue) conflicted(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.conflicts[id]
}

// ────────────────────── SwitchAttire ──────────────────────

func (s *attireRequestService) SwitchAttire(ctx context.Context, id string, req *dto.SwitchAttireRequest, callerID string) (*dto.AttireRequestResponse, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkPermission(r); err != nil {
		return nil, err
	}

	r.AttireID = req.AttireID
	r.Attire = nil
	r.Version = req.Version
	r.UpdatedBy = &callerID

	err = inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if err := s.checkOverlap(ctx, txRepo, toBooking(r)); err != nil {
			return err
		}
		return txRepo.AttireRequest.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		resp := toAttireRequestResponse(r, s.blobs)
		return &resp, nil
	}
	resp := toAttireRequestResponse(updated, s.blobs)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attireRequestService) Delete(ctx context.Context, id string, callerID string) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkPermission(r); err != nil {
		return err
	}
	if err := s.repo.AttireRequest.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete attire request failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *attireRequestService) checkPermission(r *model.AttireRequest) error {
	student := rental.StudentStatus("")
	if r.Student != nil {
		student = rental.StudentStatus(r.Student.Status)
	}
	if !rental.CanSwitchOrDelete(toBooking(r).Status, student) {
		return ErrRequestLocked
	}
	return nil
}

// ────────────────────── Availability ──────────────────────

func (s *attireRequestService) Availability(ctx context.Context, attireID string, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	from, err := rental.ParseDate(req.From)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := rental.ParseDate(req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if to.After(rental.AddDays(from, maxAvailabilityDays-1)) {
		return nil, ErrAvailabilityRange
	}

	if _, err := s.repo.Attire.GetByID(ctx, attireID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttireNotFound
		}
		return nil, err
	}

	rows, err := s.repo.AttireRequest.ListByAttire(ctx, attireID)
	if err != nil {
		s.logger.Error("load bookings failed", zap.String("attire_id", attireID), zap.Error(err))
		return nil, err
	}
	bookings := rental.BlockingOnly(toBookings(rows))

	return &dto.AvailabilityResponse{
		AttireID:         attireID,
		From:             rental.FormatDate(from),
		To:               rental.FormatDate(to),
		UnavailableDates: formatDates(rental.UnavailableDates(bookings, from, to)),
		BufferDates:      formatDates(rental.BufferDates(bookings, from, to)),
	}, nil
}
