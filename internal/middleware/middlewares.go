package middleware

import (
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so the router receives a
// single value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, body
	// limit and the global error handler.
	Global *GlobalMiddlewares

	// Auth guards the /admin routes with HTTP Basic credentials.
	Auth *AuthMiddleware

	// ContextEnhancer stores the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing wires New Relic transactions and attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles clients by ip and reports hits to New Relic.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares builds the middleware components. New Relic middlewares
// degrade to no-ops when the LoggerService has no application.
func NewMiddlewares(s *server.Server, admins AdminAuthenticator) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, admins),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
