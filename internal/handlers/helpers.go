package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
)

// SessionCookie carries the opaque session token. No Expires is set: session
// lifetime is governed entirely by the server-side session row.
func SessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     authmw.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func message(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"message": msg})
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
