package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
)

// CalendarService staff month view and iCalendar feed
type CalendarService interface {
	Month(ctx context.Context, req *dto.CalendarMonthRequest) (*dto.CalendarMonthResponse, error)
	ICS(ctx context.Context, req *dto.CalendarFilterRequest) ([]byte, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Month ──────────────────────

func (s *calendarService) Month(ctx context.Context, req *dto.CalendarMonthRequest) (*dto.CalendarMonthResponse, error) {
	filter, err := requestFilter(req.Status, req.StudentID, req.AttireID, "", "")
	if err != nil {
		return nil, err
	}

	grid := rental.NewMonthGrid(req.Year, time.Month(req.Month), s.now())
	w := grid.Window()
	filter.From, filter.To = &w.From, &w.To

	rows, err := s.repo.AttireRequest.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("load calendar requests failed", zap.Error(err))
		return nil, err
	}

	byID := make(map[string]*model.AttireRequest, len(rows))
	for i := range rows {
		byID[rows[i].AttireRequestID] = &rows[i]
	}

	grid = rental.Project(grid, toBookings(rows), rental.Filter{
		Status:    rental.Status(filter.Status),
		StudentID: filter.StudentID,
		AttireID:  filter.AttireID,
	})

	py, pm := rental.ShiftMonth(grid.Year, grid.Month, -1)
	ny, nm := rental.ShiftMonth(grid.Year, grid.Month, 1)
	resp := &dto.CalendarMonthResponse{
		Year:  grid.Year,
		Month: int(grid.Month),
		Title: fmt.Sprintf("%s %d", grid.Month, grid.Year),
		Prev:  fmt.Sprintf("%04d-%02d", py, pm),
		Next:  fmt.Sprintf("%04d-%02d", ny, nm),
		Days:  make([]dto.CalendarDayResponse, len(grid.Cells)),
	}
	for i, c := range grid.Cells {
		day := dto.CalendarDayResponse{
			Date:    rental.FormatDate(c.Date),
			InMonth: c.InMonth,
			IsToday: c.IsToday,
			Total:   c.Total,
			More:    c.More,
			Events:  make([]dto.CalendarEventResponse, 0, len(c.Events)),
		}
		for _, e := range c.Events {
			day.Events = append(day.Events, toCalendarEvent(e, byID[e.Booking.ID]))
		}
		resp.Days[i] = day
	}
	return resp, nil
}

func toCalendarEvent(e rental.CalendarEvent, row *model.AttireRequest) dto.CalendarEventResponse {
	b := e.Booking
	ev := dto.CalendarEventResponse{
		RequestID:   b.ID,
		Kind:        string(e.Kind),
		Status:      string(b.Status),
		BadgeColor:  rental.BadgeColor(b.Status),
		StudentID:   b.StudentID,
		AttireID:    b.AttireID,
		StartDate:   rental.FormatDate(b.Start),
		EndDate:     rental.FormatDate(b.End),
		BufferUntil: rental.FormatDate(b.BufferUntil()),
	}
	if row != nil {
		if row.Student != nil {
			ev.StudentName = fullName(row.Student)
		}
		if row.Attire != nil {
			ev.AttireName = row.Attire.Name
		}
	}
	return ev
}

// ────────────────────── ICS ──────────────────────

func (s *calendarService) ICS(ctx context.Context, req *dto.CalendarFilterRequest) ([]byte, error) {
	filter, err := requestFilter(req.Status, req.StudentID, req.AttireID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.AttireRequest.ListAll(ctx, filter)
	if err != nil {
		s.logger.Error("load ics requests failed", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Dress for Success//Rental Calendar//EN")
	cal.SetName("Dress for Success rentals")
	cal.SetXWRCalName("Dress for Success rentals")

	stamp := s.now().UTC()
	for i := range rows {
		r := &rows[i]
		b := toBooking(r)
		if !b.Status.Blocks() {
			continue
		}

		title := "Rental"
		if r.Attire != nil {
			title = r.Attire.Name
		}
		if r.Student != nil {
			title += " · " + fullName(r.Student)
		}

		ev := cal.AddEvent(b.ID + "-rental@dress-for-success")
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(b.Start)
		// DTEND is exclusive for all-day events
		ev.SetAllDayEndAt(rental.AddDays(b.End, 1))
		ev.SetSummary(title)
		ev.SetDescription(fmt.Sprintf("Status: %s", b.Status))
		ev.SetProperty(ics.ComponentPropertyCategories, "rental")

		if w, ok := b.BufferWindow(); ok {
			bev := cal.AddEvent(b.ID + "-buffer@dress-for-success")
			bev.SetDtStampTime(stamp)
			bev.SetAllDayStartAt(w.From)
			bev.SetAllDayEndAt(rental.AddDays(w.To, 1))
			bev.SetSummary("Cleaning: " + title)
			bev.SetDescription(fmt.Sprintf("Buffer of %d day(s) after the rental", b.Buffer()))
			bev.SetProperty(ics.ComponentPropertyCategories, "buffer")
			bev.SetProperty(ics.ComponentPropertyTransp, "TRANSPARENT")
		}
	}

	return []byte(cal.Serialize()), nil
}
