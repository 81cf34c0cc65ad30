package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KI1208/Anky/internal/models"
)

type flashcardRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.CreateFlashcard(r.Context(), chi.URLParam(r, "id"), req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, card)
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.FlashcardService.ListFlashcards(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}
	writeSuccess(w, http.StatusOK, cards)
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	card, err := s.FlashcardService.GetFlashcard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.UpdateFlashcard(r.Context(), chi.URLParam(r, "id"), req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.FlashcardService.DeleteFlashcard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleMoveFlashcard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeckID string `json:"deck_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.MoveFlashcard(r.Context(), chi.URLParam(r, "id"), req.DeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, card)
}
