// Package rest exposes the HTTP API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Vocab   *VocabHandler
	Grading *GradingHandler
	Page    *PageHandler
	Health  *HealthHandler
}

// NewRouter registers every route. Unknown paths and wrong methods answer
// with JSON errors.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/live", h.Health.Live)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/reorder-and-story", h.Vocab.ReorderAndStory)
		r.Post("/grade-answer", h.Grading.GradeAnswer)
		r.Get("/velog", h.Page.Velog)
	})

	return r
}
