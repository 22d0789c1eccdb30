package services

import (
	"context"
	"encoding/json"
	"fmt"

	"attendance-system/internal/authz"
	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	"attendance-system/pkg/config"
	apperrors "attendance-system/pkg/errors"

	"go.uber.org/zap"
)

type RoleServiceInterface interface {
	GetRoles(ctx context.Context) ([]dto.RoleDTO, error)
	FindRole(ctx context.Context, id int64) (*dto.RoleDTO, error)
	CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*dto.RoleDTO, error)
	UpdateRole(ctx context.Context, id int64, payload dto.UpdateRoleDTO) (*dto.RoleDTO, error)
	DeleteRole(ctx context.Context, id int64) error
	GetPageKeysForRole(ctx context.Context, roleName string) ([]string, error)
}

type RoleService struct {
	roleRepo  repositories.RoleRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewRoleService(
	roleRepo repositories.RoleRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) RoleServiceInterface {
	return &RoleService{
		roleRepo:  roleRepo,
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func roleToDTO(role *entities.Role) *dto.RoleDTO {
	return &dto.RoleDTO{
		RoleID:      role.RoleID,
		Name:        role.Name,
		Description: role.Description,
		PageKeys:    role.PageKeys,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func (s *RoleService) GetRoles(ctx context.Context) ([]dto.RoleDTO, error) {
	roles, err := s.roleRepo.GetRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleDTO, 0, len(roles))
	for i := range roles {
		out = append(out, *roleToDTO(&roles[i]))
	}
	return out, nil
}

func (s *RoleService) FindRole(ctx context.Context, id int64) (*dto.RoleDTO, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return roleToDTO(role), nil
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*dto.RoleDTO, error) {
	if payload.Name == "" {
		return nil, apperrors.NewBadRequestError("Role name is required")
	}
	// unknown page keys are dropped, not rejected
	pageKeys := authz.FilterPageKeys(payload.PageKeys)

	tx, err := s.roleRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting role transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	newID, err := s.roleRepo.CreateRoleInTx(ctx, tx, payload.Name, payload.Description)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.LinkPagesToRoleInTx(ctx, tx, newID, pageKeys); err != nil {
		return nil, fmt.Errorf("linking pages to role: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing role transaction: %w", err)
	}

	s.invalidatePageCache(ctx, payload.Name)
	return s.FindRole(ctx, newID)
}

func (s *RoleService) UpdateRole(ctx context.Context, id int64, payload dto.UpdateRoleDTO) (*dto.RoleDTO, error) {
	existing, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.roleRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting role transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if payload.Name != nil || payload.Description != nil {
		if err := s.roleRepo.UpdateRoleInTx(ctx, tx, id, payload.Name, payload.Description); err != nil {
			return nil, err
		}
	}
	if payload.PageKeys != nil {
		// grants are replaced wholesale; last writer wins
		pageKeys := authz.FilterPageKeys(*payload.PageKeys)
		if err := s.roleRepo.UnlinkAllPagesFromRoleInTx(ctx, tx, id); err != nil {
			return nil, fmt.Errorf("clearing page grants: %w", err)
		}
		if err := s.roleRepo.LinkPagesToRoleInTx(ctx, tx, id, pageKeys); err != nil {
			return nil, fmt.Errorf("linking pages to role: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing role transaction: %w", err)
	}

	s.invalidatePageCache(ctx, existing.Name)
	if payload.Name != nil && *payload.Name != existing.Name {
		s.invalidatePageCache(ctx, *payload.Name)
	}
	return s.FindRole(ctx, id)
}

func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.userRepo.CountByRoleName(ctx, role.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("Cannot delete a role that is still assigned to users")
	}

	if err := s.roleRepo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.invalidatePageCache(ctx, role.Name)
	return nil
}

// GetPageKeysForRole reads through a short-lived cache; role edits
// invalidate the cached entry.
func (s *RoleService) GetPageKeysForRole(ctx context.Context, roleName string) ([]string, error) {
	if roleName == "" {
		return []string{}, nil
	}

	cacheKey := pageCacheKey(roleName)
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var pages []string
		if err := json.Unmarshal([]byte(cached), &pages); err == nil {
			return pages, nil
		}
	}

	pages, err := s.roleRepo.GetPageKeysByRoleName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(pages); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, encoded, s.cfg.PageCacheTTL); err != nil {
			s.logger.Warn("failed to cache page keys", zap.String("role", roleName), zap.Error(err))
		}
	}
	return pages, nil
}

func (s *RoleService) invalidatePageCache(ctx context.Context, roleName string) {
	if err := s.cacheRepo.Del(ctx, pageCacheKey(roleName)); err != nil {
		s.logger.Warn("failed to invalidate page key cache", zap.String("role", roleName), zap.Error(err))
	}
}

func pageCacheKey(roleName string) string {
	return fmt.Sprintf("role_pages:%s", roleName)
}
