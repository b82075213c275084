package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justt1n/driffle-tool/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Get("/status", handler(s.getV1Status))
			r.Get("/decisions", handler(s.getV1Decisions))
			r.Post("/rounds", handler(s.postV1Rounds))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
