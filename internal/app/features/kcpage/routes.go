// internal/app/features/kcpage/routes.go
package kcpage

import (
	"github.com/dalemusser/authpages/internal/app/system/intakeauth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router serving the render and snapshot page endpoints.
// /render takes a context straight from the identity server, so it needs the
// intake key and a JSON body; /pages/{token} is what browsers open.
func Routes(h *Handler, guard *intakeauth.Guard) chi.Router {
	r := chi.NewRouter()
	r.With(guard.Require, intakeauth.RequireJSON).Post("/render", h.ServeRender)
	r.Get("/pages/{token}", h.ServePage)
	return r
}
