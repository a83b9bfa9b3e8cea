package service

import (
	"encoding/json"
	"time"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

const timeLayout = time.RFC3339

// ── model → rental ──

func toBooking(r *model.AttireRequest) rental.Booking {
	status, err := rental.ParseStatus(r.Status)
	if err != nil {
		// unknown legacy text still occupies the item
		status = rental.Status(r.Status)
	}
	return rental.Booking{
		ID:         r.AttireRequestID,
		AttireID:   r.AttireID,
		StudentID:  r.StudentID,
		Status:     status,
		Start:      rental.DayOf(r.StartDate),
		End:        rental.DayOf(r.EndDate),
		BufferDays: r.BufferDays,
	}
}

func toBookings(rows []model.AttireRequest) []rental.Booking {
	out := make([]rental.Booking, len(rows))
	for i := range rows {
		out[i] = toBooking(&rows[i])
	}
	return out
}

// ── model → dto ──

func fullName(s *model.Student) string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

func decodeOrderItems(raw []byte) []dto.OrderItemDTO {
	items := []dto.OrderItemDTO{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &items)
	}
	return items
}

func toStudentResponse(s *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:            s.StudentID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		FullName:      fullName(s),
		StudentNumber: s.StudentNumber,
		Email:         s.Email,
		Status:        s.Status,
		OrderItems:    decodeOrderItems(s.OrderItems),
		Version:       s.Version,
		CreatedAt:     s.CreatedAt.Format(timeLayout),
		UpdatedAt:     s.UpdatedAt.Format(timeLayout),
	}
}

func toAttireResponse(a *model.Attire, blobs storage.BlobStore) dto.AttireResponse {
	resp := dto.AttireResponse{
		ID:        a.AttireID,
		Name:      a.Name,
		Size:      a.Size,
		Gender:    a.Gender,
		Category:  a.Category,
		ImagePath: a.ImagePath,
		Status:    a.Status,
		Version:   a.Version,
		CreatedAt: a.CreatedAt.Format(timeLayout),
		UpdatedAt: a.UpdatedAt.Format(timeLayout),
	}
	if blobs != nil && a.ImagePath != "" {
		resp.ImageURL = blobs.PublicURL(a.ImagePath)
	}
	return resp
}

func toAttireRequestResponse(r *model.AttireRequest, blobs storage.BlobStore) dto.AttireRequestResponse {
	b := toBooking(r)
	resp := dto.AttireRequestResponse{
		ID:          r.AttireRequestID,
		StudentID:   r.StudentID,
		AttireID:    r.AttireID,
		StartDate:   rental.FormatDate(r.StartDate),
		EndDate:     rental.FormatDate(r.EndDate),
		Status:      string(b.Status),
		BadgeColor:  rental.BadgeColor(b.Status),
		BufferDays:  b.Buffer(),
		BufferUntil: rental.FormatDate(b.BufferUntil()),
		Notes:       r.Notes,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt.Format(timeLayout),
	}
	if r.Student != nil {
		resp.Student = &dto.StudentBrief{
			ID:            r.Student.StudentID,
			FullName:      fullName(r.Student),
			StudentNumber: r.Student.StudentNumber,
			Email:         r.Student.Email,
			Status:        r.Student.Status,
		}
		resp.CanSwitchOrDelete = rental.CanSwitchOrDelete(b.Status, rental.StudentStatus(r.Student.Status))
	} else {
		resp.CanSwitchOrDelete = rental.CanSwitchOrDelete(b.Status, "")
	}
	if r.Attire != nil {
		resp.Attire = &dto.AttireBrief{
			ID:       r.Attire.AttireID,
			Name:     r.Attire.Name,
			Size:     r.Attire.Size,
			Category: r.Attire.Category,
		}
		if blobs != nil && r.Attire.ImagePath != "" {
			resp.Attire.ImageURL = blobs.PublicURL(r.Attire.ImagePath)
		}
	}
	return resp
}

func toStaffUserResponse(u *model.StaffUser) dto.StaffUserResponse {
	resp := dto.StaffUserResponse{
		ID:        u.StaffUserID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(timeLayout),
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format(timeLayout)
	}
	return resp
}
