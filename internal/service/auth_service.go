package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sports-scheduler/config"
	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// AuthService authenticates users. The session cookie itself is managed by
// the HTTP layer; this service only decides who the caller is.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Me reloads the session user; a user deactivated since login is rejected.
	Me(ctx context.Context, userID string) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, id model.Identity, req *dto.ChangePasswordRequest) error
	// Bootstrap creates the configured superadmin when none exists yet.
	Bootstrap(ctx context.Context) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. look up the user
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user for login failed", zap.Error(err))
		return nil, err
	}

	// 2. verify the password before revealing account state
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// 3. record the login
	at := s.now()
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.TouchLastLogin(ctx, user.UserID, at); err != nil {
			return err
		}
		return recordActivity(ctx, tx, user.UserID, ActionLogin, "user", user.UserID,
			user.Username+" signed in", nil)
	})
	if err != nil {
		s.logger.Error("record login failed", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}
	user.LastLoginAt = &at

	return loginResponse(user), nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load session user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return loginResponse(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, id model.Identity, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", id.UserID), zap.Error(err))
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
			return err
		}
		return recordActivity(ctx, tx, user.UserID, ActionUpdate, "user", user.UserID, "Changed password", nil)
	})
	if err != nil {
		s.logger.Error("change password failed", zap.String("user_id", user.UserID), zap.Error(err))
	}
	return err
}

func (s *authService) Bootstrap(ctx context.Context) error {
	bc := s.cfg.Bootstrap
	if bc.Username == "" {
		return nil
	}
	count, err := s.repo.User.CountByRole(ctx, model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bc.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:     bc.Username,
		PasswordHash: string(hash),
		FullName:     bc.FullName,
		Email:        bc.Email,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("bootstrap username already taken by a non-superadmin", zap.String("username", bc.Username))
			return nil
		}
		return err
	}
	s.logger.Info("bootstrap superadmin created", zap.String("username", user.Username))
	return nil
}

func loginResponse(u *model.User) *dto.LoginResponse {
	caps := u.Role.Capabilities()
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	return &dto.LoginResponse{User: dto.NewUserResponse(u), Capabilities: names}
}
