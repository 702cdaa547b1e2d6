package httpx

import (
	"errors"
	"net/http"

	"github.com/tillbook/tillbook/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case shared.IsValidation(err):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case shared.IsInsufficientStock(err):
		Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
	case shared.IsStorageFault(err):
		Problem(w, http.StatusInternalServerError, "Storage Fault", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
