package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/logging"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/session"
)

const CookieName = "session_token"

type SessionGuard struct {
	Sessions *session.Manager
}

// RequireLogin resolves the session cookie and stores the caller's identity in
// the echo context for gated handlers.
func (g *SessionGuard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_login")

		cookie, err := c.Cookie(CookieName)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "missing_session_cookie")
			return unauthorized(c)
		}

		user, err := g.Sessions.CurrentUser(ctx, cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				l.Error("auth_failed", "status", 500, "error", err)
			} else {
				l.Warn("auth_failed", "status", 401, "reason", "unknown_session")
			}
			return unauthorized(c)
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"message": "Unauthorized. User not logged in",
	})
}

// UserID reads the identity placed in the context by RequireLogin.
func UserID(c echo.Context) (uint, error) {
	v, ok := c.Get("userID").(uint)
	if !ok {
		return 0, session.ErrNoSession
	}
	return v, nil
}
