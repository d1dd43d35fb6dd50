// Package api exposes a read-only ops surface over the identity cache and
// on-demand classification
package api

import (
	"encoding/json"
	"net/http"

	perr "trawlwatch/internal/platform/errors"
	"trawlwatch/internal/platform/logger"
)

// envelope is the standard response wrapper
type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *perr.Wire `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data}); err != nil {
		logger.Named("api").Error().Err(err).Msg("response encode failed")
	}
}

func writeErr(w http.ResponseWriter, err error) {
	status, wire := perr.HTTP(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &wire})
}
