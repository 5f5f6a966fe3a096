package media

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the body of every error response. Error is always set; the
// remaining fields narrow down which failure class the caller hit.
type errorResponse struct {
	Error string `json:"error"`
	// Message carries the underlying failure detail on 500s.
	Message string `json:"message,omitempty"`
	// VideoKey echoes the requested key on 404s.
	VideoKey string `json:"videoKey,omitempty"`
	// Filename identifies the missing bucket object when the key resolved
	// but the object is gone (catalog/bucket drift).
	Filename string `json:"filename,omitempty"`
	// AvailableKeys lists every published key when the requested one is
	// not recognized.
	AvailableKeys []string `json:"availableKeys,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
