// Package httpjson writes JSON responses and structured error bodies.
//
// Errors use the {"detail": "..."} envelope the announcement clients
// already consume. No stack traces or internal identifiers are ever
// included in a response body.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write sends v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error sends a structured error body: {"detail": detail}.
func Error(w http.ResponseWriter, status int, detail string) {
	Write(w, status, map[string]string{"detail": detail})
}
