package formula

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the JSON formula API onto the given router under the
// /formulas prefix.
func RegisterRoutes(r chi.Router, p *Processor) {
	r.Route("/formulas", func(r chi.Router) {
		r.Get("/", ListHandler(p))
		r.Post("/{name}", EvaluateHandler(p))
	})
}
