package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/logging"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/session"
)

type AuthHandler struct {
	Sessions *session.Manager
	Producer *events.Producer
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid_body", "error", err)
		return message(c, http.StatusUnauthorized, "Unauthorized. Invalid credentials")
	}

	user, sess, err := h.Sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid_credentials")
			return message(c, http.StatusUnauthorized, "Unauthorized. Invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(SessionCookie(sess.Token))

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "username", user.Username)
	return message(c, http.StatusOK, "Logged in successfully")
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	cookie, err := c.Cookie(authmw.CookieName)
	if err != nil {
		l.Warn("logout_failed", "status", 401, "reason", "missing_session_cookie")
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	if err := h.Sessions.Logout(ctx, cookie.Value); err != nil && !errors.Is(err, session.ErrNoSession) {
		l.Error("logout_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(DeleteSessionCookie())

	userID, _ := authmw.UserID(c)
	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(userID), map[string]any{
		"type":   "user_logged_out",
		"userID": userID,
	})

	l.Info("logout_successful")
	return message(c, http.StatusOK, "Logout successfully")
}
