package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/KI1208/Anky/internal/errors"
)

func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeckID string `json:"deck_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.StudyService.Start(r.Context(), req.DeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, view)
}

func (s *Server) handleStudyNext(w http.ResponseWriter, r *http.Request) {
	result, err := s.StudyService.Next(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (s *Server) handleStudyPrevious(w http.ResponseWriter, r *http.Request) {
	result, err := s.StudyService.Previous(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (s *Server) handleStudyJump(w http.ResponseWriter, r *http.Request) {
	// The index is decoded as a raw number so a missing or non-integer value
	// is rejected here, before the manager ever sees it.
	var req struct {
		Index *json.Number `json:"index"`
	}
	body, readErr := io.ReadAll(r.Body)
	if readErr != nil || json.Unmarshal(body, &req) != nil || req.Index == nil {
		handleError(w, r, errors.NewInvalidArgumentError("index", "must be an integer"))
		return
	}
	index, convErr := req.Index.Int64()
	if convErr != nil {
		handleError(w, r, errors.NewInvalidArgumentError("index", "must be an integer"))
		return
	}

	result, err := s.StudyService.JumpTo(r.Context(), int(index))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (s *Server) handleStudyCurrent(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (s *Server) handleStudyProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.StudyService.Progress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, progress)
}

func (s *Server) handleStudySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StudyService.Summary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

func (s *Server) handleStudyActive(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]bool{
		"active": s.StudyService.HasActiveSession(),
	})
}

func (s *Server) handleStudyComplete(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StudyService.Complete(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

func (s *Server) handleStudyEnd(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StudyService.End(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

func (s *Server) handleStudyReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.StudyService.Reset(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}
