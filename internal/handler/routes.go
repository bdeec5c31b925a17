package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler returns the router for every dashboard route. Cross-cutting
// middleware (request IDs, logging, CORS, rate limiting) is applied by the
// caller around it.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.GetPage)
	r.Get("/healthz", s.GetHealth)
	r.Get("/facets", s.GetFacets)
	r.Get("/dashboard", s.GetDashboard)
	r.Get("/listings", s.GetListings)
	r.Get("/export", s.GetExport)

	r.Route("/charts", func(r chi.Router) {
		r.Get("/price-time.png", s.GetPriceTimeChart)
		r.Get("/price-mileage.png", s.GetPriceMileageChart)
		r.Get("/map.png", s.GetMapChart)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Code: "not_found", Message: "no route for " + r.URL.Path}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errorDetail{Code: "method_not_allowed", Message: r.Method + " is not supported"}})
	})
	return r
}
