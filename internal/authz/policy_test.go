package authz

import (
	"testing"

	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, RequireAuthenticated(&session.Claims{UserID: 0}), apperrors.ErrUnauthorized)
	assert.NoError(t, RequireAuthenticated(&session.Claims{UserID: 1}))
}

func TestRequireRole(t *testing.T) {
	admin := &session.Claims{UserID: 1, Role: RoleAdmin}
	reviewer := &session.Claims{UserID: 2, Role: RoleReviewer}

	assert.NoError(t, RequireRole(admin, RoleAdmin))
	assert.ErrorIs(t, RequireRole(reviewer, RoleAdmin), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, RequireRole(nil, RoleAdmin), apperrors.ErrUnauthorized)
}

func TestRequireSchoolMatch(t *testing.T) {
	scopedA := &session.Claims{UserID: 1, SchoolID: int64Ptr(1)}
	scopedB := &session.Claims{UserID: 2, SchoolID: int64Ptr(2)}
	global := &session.Claims{UserID: 3}

	// same school
	assert.NoError(t, RequireSchoolMatch(scopedA, int64Ptr(1)))
	// different school
	assert.ErrorIs(t, RequireSchoolMatch(scopedA, int64Ptr(2)), apperrors.ErrForbidden)
	assert.ErrorIs(t, RequireSchoolMatch(scopedB, int64Ptr(1)), apperrors.ErrForbidden)
	// both unscoped match
	assert.NoError(t, RequireSchoolMatch(global, nil))
	// one-sided scoping is a mismatch either way
	assert.ErrorIs(t, RequireSchoolMatch(global, int64Ptr(1)), apperrors.ErrForbidden)
	assert.ErrorIs(t, RequireSchoolMatch(scopedA, nil), apperrors.ErrForbidden)
	// anonymous is Unauthorized, not Forbidden
	assert.ErrorIs(t, RequireSchoolMatch(nil, int64Ptr(1)), apperrors.ErrUnauthorized)
}

// Pins the default-allow choice: a role with no grant rows sees every page.
func TestCanViewPageEmptyGrantsAllowsAll(t *testing.T) {
	for _, key := range PageKeys {
		assert.True(t, CanViewPage(key, nil), "page %s", key)
		assert.True(t, CanViewPage(key, []string{}), "page %s", key)
	}
}

func TestCanViewPageMembership(t *testing.T) {
	grants := []string{PageDashboard, PageStudents}

	assert.True(t, CanViewPage(PageDashboard, grants))
	assert.True(t, CanViewPage(PageStudents, grants))
	assert.False(t, CanViewPage(PageUsers, grants))
	assert.False(t, CanViewPage(PageRoles, grants))
}

func TestIsPageKey(t *testing.T) {
	assert.True(t, IsPageKey(PageScanner))
	assert.False(t, IsPageKey("settings"))
	assert.False(t, IsPageKey(""))
}

func TestFilterPageKeys(t *testing.T) {
	got := FilterPageKeys([]string{PageUsers, "bogus", PageDashboard, PageUsers, ""})
	assert.Equal(t, []string{PageUsers, PageDashboard}, got)

	assert.Empty(t, FilterPageKeys(nil))
	assert.Empty(t, FilterPageKeys([]string{"nothing", "real"}))
}
