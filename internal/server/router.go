package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"physcalc/internal/formula"
	"physcalc/internal/handlers"
	"physcalc/internal/observability"
	"physcalc/internal/session"
	"physcalc/internal/web"
)

// Deps are the components the router serves.
type Deps struct {
	Processor *formula.Processor
	Sessions  *session.Manager
	Pages     *web.Pages
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(deps.Sessions.RequireAPI)
		formula.RegisterRoutes(r, deps.Processor)
	})

	deps.Pages.Routes(r)

	return r
}
