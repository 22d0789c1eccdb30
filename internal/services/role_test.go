package services

import (
	"context"
	"errors"
	"testing"

	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoleRepo struct {
	roles         map[int64]*entities.Role
	pagesByName   map[string][]string
	pageLoadCount int
	deletedIDs    []int64
}

func newFakeRoleRepo(roles ...*entities.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{
		roles:       make(map[int64]*entities.Role),
		pagesByName: make(map[string][]string),
	}
	for _, role := range roles {
		r.roles[role.RoleID] = role
		r.pagesByName[role.Name] = role.PageKeys
	}
	return r
}

func (r *fakeRoleRepo) GetRoles(ctx context.Context) ([]entities.Role, error) {
	out := make([]entities.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) FindByID(ctx context.Context, id int64) (*entities.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRoleRepo) GetPageKeysByRoleName(ctx context.Context, roleName string) ([]string, error) {
	r.pageLoadCount++
	return r.pagesByName[roleName], nil
}

func (r *fakeRoleRepo) CreateRoleInTx(ctx context.Context, tx pgx.Tx, name string, description *string) (int64, error) {
	return 0, errors.New("not supported in fake")
}

func (r *fakeRoleRepo) UpdateRoleInTx(ctx context.Context, tx pgx.Tx, id int64, name *string, description *string) error {
	return errors.New("not supported in fake")
}

func (r *fakeRoleRepo) LinkPagesToRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64, pageKeys []string) error {
	return errors.New("not supported in fake")
}

func (r *fakeRoleRepo) UnlinkAllPagesFromRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64) error {
	return errors.New("not supported in fake")
}

func (r *fakeRoleRepo) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.roles, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

func (r *fakeRoleRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("not supported in fake")
}

func teacherRole() *entities.Role {
	return &entities.Role{
		RoleID:   2,
		Name:     "teacher",
		PageKeys: []string{"dashboard", "students", "attendance"},
	}
}

func TestGetPageKeysForRoleCachesResult(t *testing.T) {
	repo := newFakeRoleRepo(teacherRole())
	cache := newFakeCacheRepo()
	svc := NewRoleService(repo, newFakeUserRepo(), cache, zap.NewNop(), testAuthConfig())

	pages, err := svc.GetPageKeysForRole(context.Background(), "teacher")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "students", "attendance"}, pages)
	assert.Equal(t, 1, repo.pageLoadCount)

	// second read is served from the cache
	pages, err = svc.GetPageKeysForRole(context.Background(), "teacher")
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "students", "attendance"}, pages)
	assert.Equal(t, 1, repo.pageLoadCount)
}

func TestGetPageKeysForEmptyRoleName(t *testing.T) {
	svc := NewRoleService(newFakeRoleRepo(), newFakeUserRepo(), newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	pages, err := svc.GetPageKeysForRole(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestDeleteRoleBlockedWhileAssigned(t *testing.T) {
	repo := newFakeRoleRepo(teacherRole())
	userRepo := newFakeUserRepo()
	userRepo.roleCounts["teacher"] = 4
	svc := NewRoleService(repo, userRepo, newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	err := svc.DeleteRole(context.Background(), 2)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 409, httpErr.Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestDeleteRoleUnassigned(t *testing.T) {
	repo := newFakeRoleRepo(teacherRole())
	cache := newFakeCacheRepo()
	cache.values["role_pages:teacher"] = `["dashboard"]`
	svc := NewRoleService(repo, newFakeUserRepo(), cache, zap.NewNop(), testAuthConfig())

	require.NoError(t, svc.DeleteRole(context.Background(), 2))
	assert.Equal(t, []int64{2}, repo.deletedIDs)

	// cached grants are invalidated with the role
	_, hit := cache.values["role_pages:teacher"]
	assert.False(t, hit)
}

func TestDeleteRoleNotFound(t *testing.T) {
	svc := NewRoleService(newFakeRoleRepo(), newFakeUserRepo(), newFakeCacheRepo(), zap.NewNop(), testAuthConfig())
	assert.ErrorIs(t, svc.DeleteRole(context.Background(), 77), apperrors.ErrNotFound)
}
