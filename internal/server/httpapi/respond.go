package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"gradinghub/internal/errdefs"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the core error taxonomy onto HTTP statuses: conflicts
// are 409, validation failures 422, missing entities 404, anything else
// is a persistence-level 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errdefs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errdefs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errdefs.ErrValidation):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
