package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/decks", func(r chi.Router) {
		r.Post("/", s.handleCreateDeck)
		r.Get("/", s.handleListDecks)
		r.Post("/import", s.handleImportDeck)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDeck)
			r.Put("/", s.handleUpdateDeck)
			r.Delete("/", s.handleDeleteDeck)
			r.Get("/stats", s.handleDeckStats)
			r.Post("/cards", s.handleCreateFlashcard)
			r.Get("/cards", s.handleListFlashcards)
		})
	})

	r.Route("/cards/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetFlashcard)
		r.Put("/", s.handleUpdateFlashcard)
		r.Delete("/", s.handleDeleteFlashcard)
		r.Post("/move", s.handleMoveFlashcard)
	})

	r.Route("/study", func(r chi.Router) {
		r.Post("/start", s.handleStartStudy)
		r.Post("/next", s.handleStudyNext)
		r.Post("/previous", s.handleStudyPrevious)
		r.Post("/jump", s.handleStudyJump)
		r.Get("/current", s.handleStudyCurrent)
		r.Get("/progress", s.handleStudyProgress)
		r.Get("/summary", s.handleStudySummary)
		r.Get("/active", s.handleStudyActive)
		r.Post("/complete", s.handleStudyComplete)
		r.Post("/end", s.handleStudyEnd)
		r.Post("/reset", s.handleStudyReset)
	})

	r.Get("/stats/study", s.handleStudyStats)
	r.Get("/imports", s.handleImportQueue)

	return r
}
