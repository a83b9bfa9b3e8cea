package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
)

var (
	ErrInvalidContent = errors.New("home page content is invalid")
)

const (
	contentCacheKey     = "content:home"
	contentHistoryLimit = 20
)

// ContentService home page content
type ContentService interface {
	Get(ctx context.Context) (*dto.HomePageContent, error)
	Save(ctx context.Context, content *dto.HomePageContent, callerID string) (*dto.ContentVersionResponse, error)
	Reset(ctx context.Context, callerID string) (*dto.ContentVersionResponse, error)
	History(ctx context.Context) ([]dto.ContentVersionResponse, error)
}

type contentService struct {
	repo   *repository.Repository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewContentService creates a ContentService; cache may be nil
func NewContentService(cfg *config.Config, repo *repository.Repository, cache Cache, logger *zap.Logger) ContentService {
	return &contentService{repo: repo, cache: cache, ttl: cfg.Redis.ContentTTL, logger: logger}
}

// DefaultHomePageContent is published by Reset and served while no row exists
func DefaultHomePageContent() dto.HomePageContent {
	return dto.HomePageContent{
		Hero: dto.HeroSection{
			Title:    "Dress for Success",
			Subtitle: "Free professional attire for students heading into interviews, career fairs and their first day on the job.",
			CTAText:  "Browse the catalog",
		},
		HowItWorks: dto.HowItWorksSection{
			Title: "How it works",
			Steps: []dto.Step{
				{ID: 1, Title: "Browse", Description: "Pick the pieces you need from the catalog and check which dates they are free."},
				{ID: 2, Title: "Request", Description: "Submit a request with your student number and the dates you need the outfit."},
				{ID: 3, Title: "Pick up", Description: "We email you when your outfit is ready to collect from the Career Centre."},
				{ID: 4, Title: "Return", Description: "Bring everything back by the end date so it can be cleaned for the next student."},
			},
		},
		Rules: dto.RulesSection{
			Title: "Program rules",
			Items: []dto.Rule{
				{ID: 1, Text: "Rentals are free for current students."},
				{ID: 2, Text: "Return items on or before your end date."},
				{ID: 3, Text: "Do not wash or dry clean items yourself."},
				{ID: 4, Text: "Report any damage when you return the outfit."},
			},
		},
		CallToAction: dto.CallToActionSection{
			Title:       "Ready for your interview?",
			Description: "Find an outfit that fits and request it in a few minutes.",
			ButtonText:  "Get started",
		},
	}
}

// ────────────────────── Get ──────────────────────

func (s *contentService) Get(ctx context.Context) (*dto.HomePageContent, error) {
	if s.cache != nil {
		if raw, err := s.cache.GetBytes(ctx, contentCacheKey); err == nil {
			var doc dto.HomePageContent
			if err := json.Unmarshal(raw, &doc); err == nil {
				return &doc, nil
			}
			s.logger.Warn("discarding unreadable cached content")
		}
	}

	row, err := s.repo.Content.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc := DefaultHomePageContent()
			return &doc, nil
		}
		s.logger.Error("load home page content failed", zap.Error(err))
		return nil, err
	}

	var doc dto.HomePageContent
	if err := json.Unmarshal(row.Content, &doc); err != nil {
		s.logger.Error("decode home page content failed", zap.String("content_id", row.ContentID), zap.Error(err))
		return nil, err
	}

	s.fill(ctx, row.Content)
	return &doc, nil
}

func (s *contentService) fill(ctx context.Context, raw []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetBytes(ctx, contentCacheKey, raw, s.ttl); err != nil {
		s.logger.Warn("cache home page content failed", zap.Error(err))
	}
}

func (s *contentService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, contentCacheKey); err != nil {
		s.logger.Warn("invalidate home page content failed", zap.Error(err))
	}
}

// ────────────────────── Save / Reset ──────────────────────

func (s *contentService) Save(ctx context.Context, content *dto.HomePageContent, callerID string) (*dto.ContentVersionResponse, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	return s.insert(ctx, content, callerID)
}

func (s *contentService) Reset(ctx context.Context, callerID string) (*dto.ContentVersionResponse, error) {
	doc := DefaultHomePageContent()
	return s.insert(ctx, &doc, callerID)
}

func (s *contentService) insert(ctx context.Context, content *dto.HomePageContent, callerID string) (*dto.ContentVersionResponse, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	row := &model.HomePageContent{Content: datatypes.JSON(raw)}
	if callerID != "" {
		row.CreatedBy = &callerID
		row.UpdatedBy = &callerID
	}
	if err := s.repo.Content.Create(ctx, row); err != nil {
		s.logger.Error("save home page content failed", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("home page content published", zap.String("content_id", row.ContentID), zap.String("by", callerID))

	resp := toContentVersion(row, *content)
	return &resp, nil
}

// ────────────────────── History ──────────────────────

func (s *contentService) History(ctx context.Context) ([]dto.ContentVersionResponse, error) {
	rows, err := s.repo.Content.ListRecent(ctx, contentHistoryLimit)
	if err != nil {
		s.logger.Error("list home page content failed", zap.Error(err))
		return nil, err
	}

	list := make([]dto.ContentVersionResponse, 0, len(rows))
	for i := range rows {
		var doc dto.HomePageContent
		if err := json.Unmarshal(rows[i].Content, &doc); err != nil {
			s.logger.Warn("skipping unreadable content version", zap.String("content_id", rows[i].ContentID))
			continue
		}
		list = append(list, toContentVersion(&rows[i], doc))
	}
	return list, nil
}

func toContentVersion(row *model.HomePageContent, doc dto.HomePageContent) dto.ContentVersionResponse {
	resp := dto.ContentVersionResponse{
		ID:        row.ContentID,
		Content:   doc,
		UpdatedAt: row.UpdatedAt.Format(timeLayout),
	}
	if row.UpdatedBy != nil {
		resp.UpdatedBy = *row.UpdatedBy
	}
	return resp
}

// validateContent catches documents the binding tags cannot: blank text and repeated ids
func validateContent(c *dto.HomePageContent) error {
	if c == nil {
		return ErrInvalidContent
	}
	for _, s := range []string{c.Hero.Title, c.Hero.CTAText, c.HowItWorks.Title, c.Rules.Title, c.CallToAction.Title, c.CallToAction.ButtonText} {
		if strings.TrimSpace(s) == "" {
			return ErrInvalidContent
		}
	}
	if len(c.HowItWorks.Steps) == 0 || len(c.Rules.Items) == 0 {
		return ErrInvalidContent
	}

	steps := make(map[int]struct{}, len(c.HowItWorks.Steps))
	for _, st := range c.HowItWorks.Steps {
		if _, dup := steps[st.ID]; dup || strings.TrimSpace(st.Title) == "" {
			return ErrInvalidContent
		}
		steps[st.ID] = struct{}{}
	}
	rules := make(map[int]struct{}, len(c.Rules.Items))
	for _, r := range c.Rules.Items {
		if _, dup := rules[r.ID]; dup || strings.TrimSpace(r.Text) == "" {
			return ErrInvalidContent
		}
		rules[r.ID] = struct{}{}
	}
	return nil
}
