package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/observability"
)

// LookupFunc runs one lookup pipeline.
type LookupFunc[T core.Result] func(ctx context.Context, req core.LookupRequest) (T, error)

// Lookup binds the query parameter param to a pipeline. Every response,
// success or failure, has the JSON shape of T; failures carry empty().
func Lookup[T core.Result](param string, run LookupFunc[T], empty func() T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := core.LookupRequest{Term: r.URL.Query().Get(param)}
		value, err := run(r.Context(), req)
		respond(w, value, err, empty)
	}
}

// respond settles a pipeline return and writes it.
func respond[T core.Result](w http.ResponseWriter, value T, err error, empty func() T) {
	outcome := core.Settle(value, err, empty)
	writeJSON(w, outcome.Status, outcome.Result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && observability.ServerLogger != nil {
		observability.ServerLogger.Warn("Failed to write response body", zap.Error(err))
	}
}
