package service

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/pkg/mailer"
)

var (
	ErrUnknownTemplate = errors.New("unknown email template")
	ErrEmailFailed     = errors.New("email delivery failed")
)

const (
	TemplateRequestReceived = "request_received"
	TemplateReadyForPickup  = "ready_for_pickup"
	TemplateReturnReminder  = "return_reminder"
)

var emailSubjects = map[string]string{
	TemplateRequestReceived: "We received your attire request",
	TemplateReadyForPickup:  "Your attire is ready for pick-up",
	TemplateReturnReminder:  "Reminder: your attire rental is ending",
}

//go:embed templates/*.html
var templateFS embed.FS

// NotificationService renders and sends templated emails
type NotificationService interface {
	SendEmail(ctx context.Context, req *dto.SendEmailRequest) error
	NotifyReadyForPickup(ctx context.Context, req *model.AttireRequest) error
}

type notificationService struct {
	cfg       *config.Config
	mailer    mailer.Mailer
	templates map[string]*template.Template
	logger    *zap.Logger
}

// emailData fields available to every template
type emailData struct {
	Subject        string
	ProgramName    string
	StudentName    string
	AttireName     string
	StartDate      string
	EndDate        string
	PickupLocation string
}

// NewNotificationService parses the embedded templates once
func NewNotificationService(cfg *config.Config, m mailer.Mailer, logger *zap.Logger) NotificationService {
	templates := make(map[string]*template.Template, len(emailSubjects))
	for name := range emailSubjects {
		templates[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &notificationService{cfg: cfg, mailer: m, templates: templates, logger: logger}
}

func displayDate(s string) string {
	d, err := rental.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("Monday, January 2, 2006")
}

func (s *notificationService) render(name string, data emailData) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", ErrUnknownTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ────────────────────── SendEmail ──────────────────────

func (s *notificationService) SendEmail(ctx context.Context, req *dto.SendEmailRequest) error {
	subject, ok := emailSubjects[req.Template]
	if !ok {
		return ErrUnknownTemplate
	}

	pickup := req.PickupLocation
	if pickup == "" && req.Template == TemplateReadyForPickup {
		pickup = s.cfg.Rental.PickupLocation
	}

	html, err := s.render(req.Template, emailData{
		Subject:        subject,
		ProgramName:    s.cfg.Mail.FromName,
		StudentName:    req.StudentName,
		AttireName:     req.AttireName,
		StartDate:      displayDate(req.StartDate),
		EndDate:        displayDate(req.EndDate),
		PickupLocation: pickup,
	})
	if err != nil {
		return err
	}

	if s.mailer == nil {
		return fmt.Errorf("%w: %v", ErrEmailFailed, mailer.ErrDisabled)
	}
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{req.To},
		Subject: subject,
		HTML:    html,
	}); err != nil {
		s.logger.Warn("send email failed",
			zap.String("template", req.Template),
			zap.String("to", req.To),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	return nil
}

// NotifyReadyForPickup needs Student and Attire preloaded
func (s *notificationService) NotifyReadyForPickup(ctx context.Context, req *model.AttireRequest) error {
	if req.Student == nil || req.Attire == nil {
		return fmt.Errorf("notify request %s: student and attire must be loaded", req.AttireRequestID)
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return s.SendEmail(ctx, &dto.SendEmailRequest{
		To:          req.Student.Email,
		Template:    TemplateReadyForPickup,
		StudentName: fullName(req.Student),
		AttireName:  req.Attire.Name,
		StartDate:   rental.FormatDate(req.StartDate),
		EndDate:     rental.FormatDate(req.EndDate),
	})
}
