package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Route("/api", func(r chi.Router) {
		r.Get("/peaks", h.listPeaks)
		r.Get("/pairs", h.listPairs)
		r.Post("/los", h.analyzeLOS)
		r.Get("/runs", h.listRuns)
		r.Get("/runs/{id}", h.getRun)
		r.Get("/version", h.getServerVersion)
	})

	// Rendered profile PNGs are served as static files.
	router.Handle("/profiles/*", http.StripPrefix("/profiles/",
		http.FileServer(http.Dir(h.profileDir))))

	return router
}
