package contextkeys

type contextKey string

const (
	SessionClaimsKey contextKey = "SessionClaims"
	AllowedPagesKey  contextKey = "AllowedPages"
)
