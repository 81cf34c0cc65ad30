package api

import (
	"net/http"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/services"
	"github.com/KI1208/Anky/internal/worker"
)

// handleImportDeck validates the payload shape and hands the import to the
// worker pool; per-record validation happens inside the job.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.ImportDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Name == "" {
		handleError(w, r, errors.NewInvalidArgumentError("name", "must not be empty"))
		return
	}
	if len(req.Cards) == 0 {
		handleError(w, r, errors.NewInvalidArgumentError("cards", "must not be empty"))
		return
	}

	job := &services.ImportJob{Svc: s.ImportService, Req: req}
	if err := s.ImportPool.TrySubmit(job); err != nil {
		if err == worker.ErrQueueFull {
			handleError(w, r, &errors.AppError{
				Code:    errors.ErrCodeInternal,
				Message: "import queue is full, retry later",
				Status:  http.StatusServiceUnavailable,
			})
			return
		}
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Info("deck import queued: name=%q, cards=%d", req.Name, len(req.Cards))
	writeSuccess(w, http.StatusAccepted, map[string]interface{}{
		"queued": true,
		"name":   req.Name,
		"cards":  len(req.Cards),
	})
}

func (s *Server) handleImportQueue(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]int{
		"pending": s.ImportPool.QueueSize(),
	})
}
