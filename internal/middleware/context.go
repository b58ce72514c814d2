package middleware

import (
	"github.com/deppfellow/fieldservice/internal/logger"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey and UserRoleKey hold the identity set by AdminAuth.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey stores the request-scoped logger in the Echo context.
	LoggerKey = "logger"
)

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext derives a logger carrying request_id, method, route and
// client ip (plus trace.id/span.id when New Relic is on) and stores it in
// both the Echo context and the request context.Context, where services and
// repositories pick it up through logger.FromContext.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			storeLogger(c, contextLogger)
			return next(c)
		}
	}
}

// storeLogger makes l the request logger for the rest of the chain.
func storeLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// withUser adds the authenticated identity to the Echo context and to the
// request logger.
func withUser(c echo.Context, userID, role string) {
	c.Set(UserIDKey, userID)
	c.Set(UserRoleKey, role)

	l := GetLogger(c).With().Str("user_id", userID).Str("user_role", role).Logger()
	storeLogger(c, l)
}

// GetUserID returns the id set by AdminAuth, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger. Outside EnhanceContext it
// returns a disabled logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
