package authz

import (
	"attendance-system/pkg/errors"
	"attendance-system/pkg/session"
)

const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
)

// Each check is a pure decision over the resolved claims; no cross-request
// state is consulted.

func RequireAuthenticated(claims *session.Claims) error {
	if claims == nil || claims.UserID <= 0 {
		return errors.ErrUnauthorized
	}
	return nil
}

func RequireRole(claims *session.Claims, role string) error {
	if err := RequireAuthenticated(claims); err != nil {
		return err
	}
	if claims.Role != role {
		return errors.ErrUnauthorized
	}
	return nil
}

// RequireSchoolMatch enforces tenant isolation. A nil resource school id
// marks a global resource: it matches only claims without a school of their
// own. Mismatch is Forbidden, not Unauthorized: the caller is authenticated
// but not entitled.
func RequireSchoolMatch(claims *session.Claims, resourceSchoolID *int64) error {
	if err := RequireAuthenticated(claims); err != nil {
		return err
	}
	if claims.SchoolID == nil && resourceSchoolID == nil {
		return nil
	}
	if claims.SchoolID == nil || resourceSchoolID == nil {
		return errors.ErrForbidden
	}
	if *claims.SchoolID != *resourceSchoolID {
		return errors.ErrForbidden
	}
	return nil
}

// CanViewPage reports whether a role with the given grant set may view the
// page. An empty allow-list grants every page; roles without grant rows
// predate the page table and must keep working.
func CanViewPage(pageKey string, allowedPages []string) bool {
	if len(allowedPages) == 0 {
		return true
	}
	for _, k := range allowedPages {
		if k == pageKey {
			return true
		}
	}
	return false
}
