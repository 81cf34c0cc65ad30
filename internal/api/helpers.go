package api

import (
	"encoding/json"
	"net/http"

	"github.com/KI1208/Anky/internal/errors"
)

// envelope is the uniform result shape every endpoint returns.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []apiError  `json:"errors,omitempty"`
}

// apiError carries a tagged field identifier instead of leaving callers to
// parse human-readable text.
type apiError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func decodeJSON(r *http.Request, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewInvalidArgumentError("body", "malformed JSON payload")
	}
	return nil
}
