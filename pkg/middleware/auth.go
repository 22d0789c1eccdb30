package middleware

import (
	"context"

	"attendance-system/internal/authz"
	"attendance-system/pkg/contextkeys"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"
	"attendance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PageGrantSource resolves the page keys granted to a role. Backed by the
// role service so grants go through its cache.
type PageGrantSource interface {
	GetPageKeysForRole(ctx context.Context, roleName string) ([]string, error)
}

type AuthMiddleware struct {
	sessions session.Service
	grants   PageGrantSource
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions session.Service, grants PageGrantSource, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, grants: grants, logger: logger}
}

// WithSession resolves the optional session cookie into the request context.
// A missing or invalid token leaves the request anonymous; it is never an
// error at this layer.
func (m *AuthMiddleware) WithSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := m.sessions.Resolve(c.Request())
		if claims != nil {
			ctx := utils.WithClaims(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

// RequireAuth rejects anonymous requests with 403.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := utils.ClaimsFromCtx(c.Request().Context())
		if err := authz.RequireAuthenticated(claims); err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}
		return next(c)
	}
}

// RequireAdmin rejects requests whose session does not carry the admin role.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := utils.ClaimsFromCtx(c.Request().Context())
		if err := authz.RequireRole(claims, authz.RoleAdmin); err != nil {
			m.logger.Warn("admin access denied",
				zap.Int64("user_id", userIDOf(claims)),
				zap.String("path", c.Path()),
			)
			return utils.ErrorResponse(c, err, m.logger)
		}
		return next(c)
	}
}

// RequirePage gates a route group behind a page grant. The caller must be
// authenticated; the grant set is loaded for their role and also stashed in
// the request context for handlers that want it.
func (m *AuthMiddleware) RequirePage(pageKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := c.Request().Context()
			claims, _ := utils.ClaimsFromCtx(reqCtx)
			if err := authz.RequireAuthenticated(claims); err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}

			pages, err := m.grants.GetPageKeysForRole(reqCtx, claims.Role)
			if err != nil {
				m.logger.Error("failed to load page grants",
					zap.String("role", claims.Role), zap.Error(err))
				return utils.ErrorResponse(c, err, m.logger)
			}

			if !authz.CanViewPage(pageKey, pages) {
				m.logger.Warn("page access denied",
					zap.Int64("user_id", claims.UserID),
					zap.String("page", pageKey),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}

			c.SetRequest(c.Request().WithContext(
				context.WithValue(reqCtx, contextkeys.AllowedPagesKey, pages)))
			return next(c)
		}
	}
}

func userIDOf(claims *session.Claims) int64 {
	if claims == nil {
		return 0
	}
	return claims.UserID
}
