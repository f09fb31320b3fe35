package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"treehealth/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.With(s.sessions.Middleware).Get("/", handler(s.getIndex))

		r.Route("/v1", func(r chi.Router) {
			r.Get("/options", handler(s.getV1Options))

			// график по явно переданному выбору, без сессии
			r.Get("/chart", handler(s.getV1Chart))
			r.Get("/chart.vl.json", handler(s.getV1ChartVegaLite))
			r.Get("/chart.png", handler(s.getV1ChartPNG))

			// область графика дашборда текущей сессии
			r.Route("/session", func(r chi.Router) {
				r.Use(s.sessions.Middleware)

				r.Get("/chart", handler(s.getV1SessionChart))
				r.Post("/selection", handler(s.postV1SessionSelection))
			})
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
