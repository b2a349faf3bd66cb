package httpx

import (
	"errors"
	"net/http"

	"github.com/profitpulse/profitpulse/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Ownership mismatches surface as 404 so callers cannot probe for the
// existence of another cafe's resources.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrLocked):
		Problem(w, http.StatusConflict, "Generation In Progress", err.Error())
	case errors.Is(err, shared.ErrProvider):
		Problem(w, http.StatusBadGateway, "AI Provider Error", err.Error())
	case errors.Is(err, shared.ErrBadReply):
		Problem(w, http.StatusInternalServerError, "AI Reply Unusable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
