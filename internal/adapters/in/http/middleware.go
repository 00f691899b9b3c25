package http

import (
	"errors"
	"slices"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorKey = "actor"

var (
	ErrTokenIsMissing = errors.New("bearer token is missing")
	ErrRoleNotAllowed = errors.New("role is not allowed here")
)

// TokenVerifier turns a bearer token into the calling actor.
type TokenVerifier interface {
	Verify(token string) (kernel.Actor, error)
}

// Authenticate rejects requests without a valid bearer token or accessToken cookie.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return authenticate(verifier, true, false)
}

// AuthenticateOptional lets anonymous requests through but still rejects a bad token.
func AuthenticateOptional(verifier TokenVerifier) echo.MiddlewareFunc {
	return authenticate(verifier, false, false)
}

// AuthenticateStream also accepts the token as the access_token query
// parameter, since browsers cannot set headers on websocket handshakes.
func AuthenticateStream(verifier TokenVerifier) echo.MiddlewareFunc {
	return authenticate(verifier, true, true)
}

func authenticate(verifier TokenVerifier, required, fromQuery bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				token = cookieValue(c, accessTokenCookie)
				ok = token != ""
			}
			if !ok && fromQuery {
				token = c.QueryParam("access_token")
				ok = token != ""
			}
			if !ok {
				if required {
					return errs.NewUnauthorizedErrorWithCause("authenticate", ErrTokenIsMissing)
				}
				return next(c)
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFrom(c)
			if !ok {
				return errs.NewUnauthorizedErrorWithCause("authorize", ErrTokenIsMissing)
			}
			if !slices.Contains(roles, actor.Role()) {
				return errs.NewForbiddenErrorWithCause(c.Path(), ErrRoleNotAllowed)
			}
			return next(c)
		}
	}
}

// RequestLogger writes one line per request through zap.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			if actor, ok := actorFrom(c); ok {
				fields = append(fields, zap.String("user_id", actor.UserID().String()))
			}
			logger.Info("request", fields...)

			return nil
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func actorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	return actor, ok
}

// optionalActor is nil for anonymous requests.
func optionalActor(c echo.Context) *kernel.Actor {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	return &actor
}

func requireActor(c echo.Context) (kernel.Actor, error) {
	actor, ok := actorFrom(c)
	if !ok {
		return kernel.Actor{}, errs.NewUnauthorizedErrorWithCause("authorize", ErrTokenIsMissing)
	}
	return actor, nil
}
