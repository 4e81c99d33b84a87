package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const ClaimsContextKey ContextKey = "session_claims"

// Middleware is the request gate for protected routes
type Middleware struct {
	tokenService TokenService
	denylist     Denylist
}

// NewMiddleware creates the gate. denylist may be nil when server-side
// revocation is disabled.
func NewMiddleware(tokenService TokenService, denylist Denylist) *Middleware {
	return &Middleware{tokenService: tokenService, denylist: denylist}
}

// RequireAuth validates the session cookie and attaches the caller's identity
// to the request context. Requests without a valid token never reach next.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		token, err := GetSessionTokenFromCookie(r)
		if err != nil {
			httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "session has expired, please log in again", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "invalid session token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		if m.denylist != nil {
			revoked, err := m.denylist.IsRevoked(r.Context(), claims.TokenID)
			if err != nil {
				logger.Error("failed to check token revocation", "error", err.Error())
				httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
				return
			}
			if revoked {
				httputil.RespondErrorWithCode(w, "session has been logged out", httputil.CodeTokenRevoked, http.StatusUnauthorized)
				return
			}
		}

		ctx := logging.WithUserID(r.Context(), claims.Identity.ID.String())
		next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
	})
}

// WithClaims stores verified session claims in ctx
func WithClaims(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext extracts the session claims placed by RequireAuth
func ClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*TokenClaims)
	return claims, ok && claims != nil
}

// IdentityFromContext extracts the acting user's identity
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return Identity{}, false
	}
	return claims.Identity, true
}
