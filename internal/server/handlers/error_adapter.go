package handlers

import (
	"net/http"

	apperrors "github.com/wordser/wordser/internal/errors"
)

// httpErrorResponder writes envelope errors for the health endpoints. The
// server package replaces it with its central handler.
var httpErrorResponder = apperrors.RespondWithError

// SetHTTPErrorResponder installs responder; nil restores the default.
func SetHTTPErrorResponder(responder func(http.ResponseWriter, *http.Request, error)) {
	if responder == nil {
		responder = apperrors.RespondWithError
	}
	httpErrorResponder = responder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}
