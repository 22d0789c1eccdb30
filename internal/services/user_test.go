package services

import (
	"context"
	"testing"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func existingUser(id, schoolID int64) *entities.User {
	return &entities.User{
		UserID:       id,
		Username:     "teacher1",
		PasswordHash: "$2a$10$placeholderplaceholderplaceholder",
		Fullname:     "Test Teacher",
		Role:         "reviewer",
		SchoolID:     &schoolID,
	}
}

func TestDeleteUserCannotDeleteSelf(t *testing.T) {
	repo := newFakeUserRepo(existingUser(1, 10))
	svc := NewUserService(repo, zap.NewNop())

	err := svc.DeleteUser(context.Background(), adminClaims(10), 1)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestDeleteUserCrossSchoolForbidden(t *testing.T) {
	repo := newFakeUserRepo(existingUser(2, 20))
	svc := NewUserService(repo, zap.NewNop())

	err := svc.DeleteUser(context.Background(), adminClaims(10), 2)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, repo.deletedIDs)
}

func TestDeleteUserSameSchool(t *testing.T) {
	repo := newFakeUserRepo(existingUser(2, 10))
	svc := NewUserService(repo, zap.NewNop())

	require.NoError(t, svc.DeleteUser(context.Background(), adminClaims(10), 2))
	assert.Equal(t, []int64{2}, repo.deletedIDs)
}

func TestCreateUserPinsActorSchool(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	other := int64(99)
	created, err := svc.CreateUser(context.Background(), adminClaims(10), dto.CreateUserDTO{
		Username: "newuser",
		Password: "secret123",
		Fullname: "New User",
		SchoolID: &other,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SchoolID)
	assert.Equal(t, int64(10), *created.SchoolID)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	created, err := svc.CreateUser(context.Background(), adminClaims(10), dto.CreateUserDTO{
		Username: "newuser",
		Password: "secret123",
		Fullname: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "reviewer", created.Role)
}

// A scoped admin cannot move an account into another school, but may keep
// restating their own.
func TestUpdateUserScopedAdminCannotMoveSchools(t *testing.T) {
	repo := newFakeUserRepo(existingUser(2, 10))
	svc := NewUserService(repo, zap.NewNop())

	foreign := int64(99)
	_, err := svc.UpdateUser(context.Background(), adminClaims(10), 2, dto.UpdateUserDTO{
		SchoolID: &foreign,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	own := int64(10)
	updated, err := svc.UpdateUser(context.Background(), adminClaims(10), 2, dto.UpdateUserDTO{
		SchoolID: &own,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SchoolID)
	assert.Equal(t, int64(10), *updated.SchoolID)
}

func TestGetUsersGlobalAdminSeesAll(t *testing.T) {
	repo := newFakeUserRepo(existingUser(1, 10), existingUser(2, 20))
	svc := NewUserService(repo, zap.NewNop())

	global := &session.Claims{UserID: 99, Role: "admin"}
	users, err := svc.GetUsers(context.Background(), global)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGetUsersScopedAdmin(t *testing.T) {
	repo := newFakeUserRepo(existingUser(1, 10), existingUser(2, 20))
	svc := NewUserService(repo, zap.NewNop())

	users, err := svc.GetUsers(context.Background(), adminClaims(10))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].UserID)
}
