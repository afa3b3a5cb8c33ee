package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/metrics"
	"github.com/wordser/wordser/internal/observability"
)

const maxEchoBody = 1 << 20

// EchoHandler returns the posted {"text": ...} body unchanged. A body that
// does not decode yields 400 with {"text":""}.
func EchoHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind := string(core.KindEcho)

	var msg core.EchoMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEchoBody))
	if err := dec.Decode(&msg); err != nil {
		if logger := observability.ServerLogger; logger != nil {
			logger.Warn("Echo rejected", zap.String("kind", kind), zap.Error(err))
		}
		metrics.RecordLookup(kind, false, time.Since(start))
		metrics.RecordLookupFailure(kind, "invalid_request")
		respond(w, core.EmptyEchoMessage(), fmt.Errorf("%w: %v", core.ErrInvalidRequest, err), core.EmptyEchoMessage)
		return
	}

	metrics.RecordLookup(kind, true, time.Since(start))
	respond(w, msg, nil, core.EmptyEchoMessage)
}
