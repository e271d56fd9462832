// Package http provides the HTTP handlers and router for the API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/nhoang/noteful-server/internal/apperr"
)

// writeError is the single place where service errors become HTTP
// responses, so the client-facing messages stay consistent across
// endpoints.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.MessageOf(err), apperr.HTTPStatus(apperr.CodeOf(err)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
