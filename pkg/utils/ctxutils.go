package utils

import (
	"context"

	"attendance-system/pkg/contextkeys"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"
)

// ClaimsFromCtx returns the session claims placed by the auth middleware.
func ClaimsFromCtx(ctx context.Context) (*session.Claims, error) {
	claims, ok := ctx.Value(contextkeys.SessionClaimsKey).(*session.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrNoSessionInContext
	}
	return claims, nil
}

func WithClaims(ctx context.Context, claims *session.Claims) context.Context {
	return context.WithValue(ctx, contextkeys.SessionClaimsKey, claims)
}
