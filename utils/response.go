package utils

import (
	"encoding/json"
	"net/http"

	"courtside/apperr"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithAppError maps a kinded error onto the wire: status from the
// kind, message scrubbed for Storage errors.
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, apperr.Status(err), apperr.Message(err))
}

type M map[string]interface{}
