// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
)

// ReadinessProbe reports whether the service can serve kiosk data.
type ReadinessProbe func(ctx context.Context) bool

// NewHealthCheck creates a Fiber healthcheck middleware with Kubernetes-style endpoints.
//
// Endpoints:
//   - GET /livez  - Liveness probe (app is running)
//   - GET /readyz - Readiness probe (aggregate obtainable)
//
// This middleware should be registered BEFORE other routes.
func NewHealthCheck(ready ReadinessProbe) fiber.Handler {
	return healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/livez",
		LivenessProbe: func(_ *fiber.Ctx) bool {
			return true
		},

		ReadinessEndpoint: "/readyz",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			if ready == nil {
				return true
			}

			return ready(c.Context())
		},
	})
}
