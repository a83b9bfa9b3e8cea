package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrInvalidStudentStatus = errors.New("invalid student status")
)

// StudentService roster management
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentDetailResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type studentService struct {
	repo   *repository.Repository
	blobs  storage.BlobStore
	logger *zap.Logger
}

// NewStudentService creates a StudentService
func NewStudentService(repo *repository.Repository, blobs storage.BlobStore, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, blobs: blobs, logger: logger}
}

func encodeOrderItems(items []dto.OrderItemDTO) datatypes.JSON {
	if items == nil {
		items = []dto.OrderItemDTO{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	status := rental.StudentActive
	if req.Status != "" {
		st, err := rental.ParseStudentStatus(req.Status)
		if err != nil {
			return nil, ErrInvalidStudentStatus
		}
		status = st
	}

	student := &model.Student{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		Email:         strings.TrimSpace(req.Email),
		Status:        string(status),
		OrderItems:    encodeOrderItems(req.OrderItems),
	}
	student.CreatedBy = &callerID
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("create student failed", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentDetailResponse, error) {
	student, err := s.repo.Student.GetWithRequests(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("load student failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.StudentDetailResponse{
		StudentResponse: toStudentResponse(student),
		Requests:        make([]dto.AttireRequestResponse, 0, len(student.Requests)),
	}
	for i := range student.Requests {
		r := &student.Requests[i]
		r.Student = student
		resp.Requests = append(resp.Requests, toAttireRequestResponse(r, s.blobs))
	}
	return resp, nil
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filter := repository.StudentFilter{Query: strings.TrimSpace(req.Q)}
	if req.Status != "" {
		st, err := rental.ParseStudentStatus(req.Status)
		if err != nil {
			return nil, 0, ErrInvalidStudentStatus
		}
		filter.Status = string(st)
	}

	students, total, err := s.repo.Student.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		list = append(list, toStudentResponse(&students[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("load student failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.StudentNumber != nil {
		student.StudentNumber = strings.TrimSpace(*req.StudentNumber)
	}
	if req.Email != nil {
		student.Email = strings.TrimSpace(*req.Email)
	}
	if req.Status != nil {
		st, err := rental.ParseStudentStatus(*req.Status)
		if err != nil {
			return nil, ErrInvalidStudentStatus
		}
		student.Status = string(st)
	}
	if req.OrderItems != nil {
		student.OrderItems = encodeOrderItems(*req.OrderItems)
	}
	student.Version = req.Version
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.repo.Student.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete student failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
