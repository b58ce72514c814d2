package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminAuthenticator checks admin credentials.
type AdminAuthenticator interface {
	AuthenticateAdmin(ctx context.Context, email, password string) (model.User, error)
}

// AuthMiddleware protects the /admin routes with HTTP Basic credentials of an
// ADMIN user.
type AuthMiddleware struct {
	server        *server.Server
	authenticator AdminAuthenticator
}

func NewAuthMiddleware(s *server.Server, authenticator AdminAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:        s,
		authenticator: authenticator,
	}
}

// RequireAdmin wraps Echo's BasicAuth middleware.
//
// A missing or malformed Authorization header and wrong credentials answer
// 401 with a WWW-Authenticate challenge. Valid credentials of a user who is
// not ADMIN, or who is not active, answer 403.
func (auth *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "fieldservice-admin",
		Validator: func(email, password string, c echo.Context) (bool, error) {
			start := time.Now()
			logger := GetLogger(c)

			u, err := auth.authenticator.AuthenticateAdmin(c.Request().Context(), email, password)
			if err != nil {
				var httpErr *errs.HTTPError
				if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
					logger.Warn().
						Str("function", "RequireAdmin").
						Dur("duration", time.Since(start)).
						Msg("admin authentication failed")
					return false, nil
				}
				return false, err
			}

			withUser(c, strconv.FormatInt(u.ID, 10), string(u.AccessLevel))

			GetLogger(c).Info().
				Str("function", "RequireAdmin").
				Dur("duration", time.Since(start)).
				Msg("admin authenticated")
			return true, nil
		},
	})
}
