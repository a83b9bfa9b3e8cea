package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrStaffNotFound      = errors.New("staff user not found")
	ErrStaffEmailTaken    = errors.New("a staff user with this email already exists")
)

// AuthService staff sign-in, current user and sign-out
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, staffUserID string) (*dto.StaffUserResponse, error)
	// Logout revokes the token id until the token would have expired
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CreateStaffUser(ctx context.Context, req *dto.CreateStaffUserRequest) (*dto.StaffUserResponse, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService; blacklist may be nil
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.StaffUser.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load staff user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.StaffUserID, user.Email)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.StaffUser.TouchLastLogin(ctx, user.StaffUserID, now); err != nil {
		s.logger.Warn("record last login failed", zap.String("staff_user_id", user.StaffUserID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        toStaffUserResponse(user),
	}, nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, staffUserID string) (*dto.StaffUserResponse, error) {
	user, err := s.repo.StaffUser.GetByID(ctx, staffUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("load staff user failed", zap.String("id", staffUserID), zap.Error(err))
		return nil, err
	}
	resp := toStaffUserResponse(user)
	return &resp, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CreateStaffUser ──────────────────────

func (s *authService) CreateStaffUser(ctx context.Context, req *dto.CreateStaffUserRequest) (*dto.StaffUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.StaffUser.GetByEmail(ctx, email); err == nil {
		return nil, ErrStaffEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.StaffUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.StaffUser.Create(ctx, user); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrStaffEmailTaken
		}
		s.logger.Error("create staff user failed", zap.Error(err))
		return nil, err
	}

	resp := toStaffUserResponse(user)
	return &resp, nil
}
