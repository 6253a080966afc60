package api

import (
	"encoding/json"
	"net/http"

	"github.com/sponnect/sponnect/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, payload any, code int) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, errorResponse{Error: message}, code)
}

// writeDomainError maps a service error onto its HTTP status with the error
// text as the single user-visible message. Unexpected errors are masked.
func writeDomainError(w http.ResponseWriter, err error) {
	code := apperr.HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.Error("internal error", "err", err)
		msg = "internal server error"
	}
	writeError(w, code, msg)
}
