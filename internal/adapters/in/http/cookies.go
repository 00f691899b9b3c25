package http

import (
	"net/http"
	"time"

	"parcelhub/internal/adapters/in/http/auth"

	"github.com/labstack/echo/v4"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) setSession(ctx echo.Context, s auth.Session) {
	ctx.SetCookie(c.cookie(accessTokenCookie, s.AccessToken, s.ExpiresAt))
	ctx.SetCookie(c.cookie(refreshTokenCookie, s.RefreshToken, s.RefreshExpiresAt))
}

// clearSession expires both cookies. Tokens already handed out stay valid
// until they expire.
func (c CookieConfig) clearSession(ctx echo.Context) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		cookie := c.cookie(name, "", time.Unix(0, 0))
		cookie.MaxAge = -1
		ctx.SetCookie(cookie)
	}
}

func (c CookieConfig) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieValue(ctx echo.Context, name string) string {
	cookie, err := ctx.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
