package middleware

import (
	"context"
	"net/http"
	"strings"

	"back2u/internal/api"
	"back2u/internal/common"
	"back2u/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey = "user"

	// CookieName is the session cookie set at login.
	CookieName = "token"
)

// Verifier resolves a session token to its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*service.SessionClaims, error)
}

// Tokens returns the presented session tokens, cookie first and then the
// Authorization: Bearer header. Duplicates are collapsed.
func Tokens(c echo.Context) []string {
	var out []string
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		out = append(out, ck.Value)
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" && (len(out) == 0 || out[0] != tok) {
			out = append(out, tok)
		}
	}
	return out
}

// RequireAuth rejects requests without a valid session with 401. A cookie
// that fails verification does not hide a valid bearer token.
func RequireAuth(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokens := Tokens(c)
			if len(tokens) == 0 {
				tokens = []string{""}
			}
			var err error
			for _, token := range tokens {
				var claims *service.SessionClaims
				if claims, err = v.Verify(c.Request().Context(), token); err == nil {
					c.Set(ContextUserKey, claims)
					return next(c)
				}
			}
			return c.JSON(http.StatusUnauthorized, api.HTTPError{
				Message: common.PublicMessage(err, "authentication required"),
			})
		}
	}
}

// ClaimsFrom returns the session attached by RequireAuth.
func ClaimsFrom(c echo.Context) (*service.SessionClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.SessionClaims)
	return claims, ok && claims != nil
}

// UserID returns the authenticated user's id, or "" when there is none.
func UserID(c echo.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return claims.UserID
	}
	return ""
}
