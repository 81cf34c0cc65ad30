package api

import "net/http"

func (s *Server) handleStudyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.StudyStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats)
}
