package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	"attendance-system/pkg/config"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID int64) (*entities.User, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

// Login checks credentials scoped to one school. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	logger := s.logger.With(
		zap.Int64("schoolID", payload.SchoolID),
		zap.String("username", payload.Username),
	)

	lockoutKey := fmt.Sprintf("login_attempts:%d:%s", payload.SchoolID, payload.Username)
	attemptsStr, _ := s.cacheRepo.Get(ctx, lockoutKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("account temporarily locked after repeated login failures")
		return nil, apperrors.ErrAccountLocked
	}

	user, err := s.userRepo.FindByUsername(ctx, payload.SchoolID, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, lockoutKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		logger.Warn("login failed, wrong password")
		s.registerFailedAttempt(ctx, lockoutKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, lockoutKey); err != nil {
		logger.Warn("failed to reset login attempt counter", zap.Error(err))
	}
	return user, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	if _, err := s.cacheRepo.Incr(ctx, key); err != nil {
		s.logger.Warn("failed to increment login attempt counter", zap.Error(err))
		return
	}
	if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
		s.logger.Warn("failed to set login attempt TTL", zap.Error(err))
	}
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
