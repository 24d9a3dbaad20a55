// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

// DetailResponse is the standard error shape for all API errors.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON marshals a Go value and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteDetail sends a JSON error with a human-readable detail string.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	WriteJSON(w, status, DetailResponse{Detail: detail})
}
