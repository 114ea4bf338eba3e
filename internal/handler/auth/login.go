package auth

import (
	"context"
	"net/http"
	"time"

	"back2u/internal/api"
	"back2u/internal/middleware"
	"back2u/internal/model"

	"github.com/labstack/echo/v4"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
}

type Revoker interface {
	Revoke(ctx context.Context, token string) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func (cc CookieConfig) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		MaxAge:   maxAge,
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
	}
	// Cross-site frontends need SameSite=None, which browsers only accept on secure cookies.
	if cc.Secure {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

// LoginHandler opens a session and sets the token cookie.
// @Summary     Log in
// @Description Verifies email and password, sets the HttpOnly "token" cookie and returns the token
// @Tags        sessions
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "Credentials"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.HTTPError
// @Failure     500  {object} api.HTTPError
// @Router      /sessions [post]
func LoginHandler(svc Authenticator, cc CookieConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, err)
		}

		user, token, err := svc.Authenticate(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return api.Fail(c, err)
		}

		c.SetCookie(cc.cookie(token, int(cc.TTL.Seconds()), time.Now().Add(cc.TTL)))
		return c.JSON(http.StatusOK, api.LoginResponse{
			Success: true,
			Message: "Login successful",
			User:    user,
			Token:   token,
		})
	}
}

// LogoutHandler revokes the presented session, if any, and clears the cookie.
// @Summary     Log out
// @Tags        sessions
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.HTTPError
// @Router      /sessions [delete]
func LogoutHandler(svc Revoker, cc CookieConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(cc.cookie("", -1, time.Unix(0, 0)))
		for _, token := range middleware.Tokens(c) {
			if err := svc.Revoke(c.Request().Context(), token); err != nil {
				return api.Fail(c, err)
			}
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "Logged out successfully"})
	}
}
