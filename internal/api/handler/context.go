package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// SessionContextKey is where the session middleware parks the resolved
// session for the request.
const SessionContextKey = "session"

// currentSession returns the authenticated session for the request, or nil
// for anonymous callers. Handlers pass the result to the service layer,
// which owns the 401 decision.
func currentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionContextKey).(*domain.Session)
	return sess
}

// SessionCookie carries the deployment-specific cookie attributes and writes
// the session token cookie on sign-in/up and sign-out.
type SessionCookie struct {
	Name     string
	TTL      time.Duration
	Secure   bool
	SameSite string
	Domain   string
}

func (sc SessionCookie) issue(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: sc.sameSite(),
		Domain:   sc.Domain,
	})
}

func (sc SessionCookie) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: sc.sameSite(),
		Domain:   sc.Domain,
	})
}

func (sc SessionCookie) sameSite() http.SameSite {
	switch strings.ToLower(sc.SameSite) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
