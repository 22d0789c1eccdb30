package session

import (
	"fmt"
	"net/http"
	"time"

	apperrors "attendance-system/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

const CookieName = "auth_session"

// Claims is the decoded, verified content of a session token. A claims value
// either does not exist at all (no session) or carries a non-zero UserID.
// SchoolID may be nil, meaning no tenant scoping applies.
type Claims struct {
	UserID   int64  `json:"user_id"`
	SchoolID *int64 `json:"school_id,omitempty"`
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type Service interface {
	Issue(claims Claims, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
	Resolve(r *http.Request) *Claims
	TTL() time.Duration
}

type service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds the token codec with an explicit secret. The secret is
// injected once at startup and never read from the environment here.
func NewService(secret string, ttl time.Duration) Service {
	return &service{secret: []byte(secret), ttl: ttl}
}

func (s *service) TTL() time.Duration {
	return s.ttl
}

func (s *service) Issue(claims Claims, ttl time.Duration) (string, error) {
	if claims.UserID <= 0 {
		return "", fmt.Errorf("session claims require a user id")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(s.secret)
}

// Verify recomputes the signature and checks the payload. Every failure mode
// (malformed token, bad signature, missing user id, expired) reports
// ErrInvalidToken; callers must check for an absent token themselves.
// Expiry is exclusive: a token verified exactly at its expiry instant fails.
func (s *service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return s.secret, nil
		default:
			return nil, apperrors.ErrBadSigningMethod
		}
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return nil, apperrors.ErrInvalidToken
	}

	now := time.Now()
	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, apperrors.ErrTokenExpired)
	}
	if claims.IssuedAt != nil && claims.IssuedAt.Time.After(now) {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// Resolve extracts the optional session from a request's cookies. An absent
// cookie and a token that fails verification are deliberately
// indistinguishable: both yield nil, so no validation detail leaks.
func (s *service) Resolve(r *http.Request) *Claims {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := s.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}
