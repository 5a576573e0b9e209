package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("encoding response")
	}
}

// badRequest rejects a request before it touches the store.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// internalError surfaces a store failure with the underlying message
// attached for operator diagnosis.
func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}
