package service

import (
	"errors"
	"time"

	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
)

var businessErrors = []error{
	ErrInvalidCredentials, ErrStaffNotFound, ErrStaffEmailTaken,
	ErrStudentNotFound, ErrInvalidStudentStatus,
	ErrAttireNotFound, ErrInvalidCategory, ErrInvalidAttireStatus, ErrInvalidSize,
	ErrImageRequired, ErrInvalidImage, ErrFileNotFound,
	ErrRequestNotFound, ErrRequestOverlap, ErrRequestLocked, ErrInvalidDateRange,
	ErrInvalidStatus, ErrInvalidDate, ErrAvailabilityRange,
	ErrInvalidContent, ErrUnknownTemplate,
	pkgerrors.ErrOptimisticLock,
}

// isBusinessError reports whether err is an expected outcome rather than a fault
func isBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func formatDates(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = rental.FormatDate(d)
	}
	return out
}
