package server

import (
	"net/http"

	apperrors "github.com/wordser/wordser/internal/errors"
)

// HandleError writes err as a gofulmen error envelope. Lookup routes do not
// use it; their failures keep the route's response shape.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}
