package handler

import (
	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
)

// Handler aggregate of every HTTP handler
type Handler struct {
	Auth          *AuthHandler
	Student       *StudentHandler
	Attire        *AttireHandler
	Catalog       *CatalogHandler
	AttireRequest *AttireRequestHandler
	Calendar      *CalendarHandler
	Export        *ExportHandler
	Content       *ContentHandler
	File          *FileHandler
	Notification  *NotificationHandler
}

// NewHandler wires handlers to services
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Student:       NewStudentHandler(svc.Student),
		Attire:        NewAttireHandler(svc.Attire, cfg.Storage.MaxUploadSize),
		Catalog:       NewCatalogHandler(svc.Attire, svc.AttireRequest),
		AttireRequest: NewAttireRequestHandler(svc.AttireRequest),
		Calendar:      NewCalendarHandler(svc.Calendar),
		Export:        NewExportHandler(svc.Export),
		Content:       NewContentHandler(svc.Content),
		File:          NewFileHandler(svc.Attire),
		Notification:  NewNotificationHandler(svc.Notification),
	}
}
