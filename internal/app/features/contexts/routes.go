// internal/app/features/contexts/routes.go
package contexts

import (
	"github.com/dalemusser/authpages/internal/app/system/intakeauth"
	"github.com/dalemusser/authpages/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the intake API, mounted under /api/contexts.
// Requests are rate limited (nil limiter disables it), then must carry the
// intake key and a JSON body.
func Routes(h *Handler, guard *intakeauth.Guard, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.Use(guard.Require, intakeauth.RequireJSON)
	r.Post("/", h.Create)
	return r
}
