package conversation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/conversation", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/answer", h.SubmitAnswer)
		r.Post("/{id}/option", h.SelectOption)
		r.Post("/{id}/generate", h.Generate)
		r.Get("/{id}/result", h.GetResult)
		r.Get("/{id}/result/export", h.ExportResult)
		r.Post("/{id}/restart", h.Restart)
		r.Delete("/{id}", h.DeleteSession)
	})
}
