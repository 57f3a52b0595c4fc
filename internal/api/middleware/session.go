package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// sessionContextKey matches handler.SessionContextKey; duplicated to avoid a
// middleware → handler import.
const sessionContextKey = "session"

// Session resolves the session cookie into the request context. Requests
// without a cookie, or with a token the store no longer knows, proceed as
// anonymous; protected operations reject them downstream.
func Session(store ports.SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil || sess == nil {
				return next(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}
