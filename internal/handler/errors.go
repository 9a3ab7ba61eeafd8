package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/handler/gen"
	"github.com/nomadsuite/compliance/internal/middleware"
)

const (
	tripNotFound = "trip not found"
	userHeader   = "X-User-ID"
)

func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody takes the message from the caller, the layer that knows what
// was being looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return errorBody("not_found", message)
}

func conflictBody(err error) gen.ErrorResponse {
	return errorBody("overlap_conflict", unwrapMessage(err, domain.ErrConflict))
}

func validationBody(err error) gen.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err, domain.ErrValidation))
}

// writeParamError renders a path, query or header parameter the generated
// wrapper could not bind.
func writeParamError(w http.ResponseWriter, _ *http.Request, err error) {
	switch name := paramName(err); name {
	case userHeader:
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid "+userHeader+" header")
	case "id":
		middleware.WriteError(w, http.StatusNotFound, "not_found", tripNotFound)
	case "":
		middleware.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		middleware.WriteError(w, http.StatusUnprocessableEntity, "validation_error", name+" is invalid")
	}
}

func paramName(err error) string {
	var invalid *gen.InvalidParamFormatError
	var missing *gen.RequiredHeaderError
	var tooMany *gen.TooManyValuesForParamError
	switch {
	case errors.As(err, &invalid):
		return invalid.ParamName
	case errors.As(err, &missing):
		return missing.ParamName
	case errors.As(err, &tooMany):
		return tooMany.ParamName
	default:
		return ""
	}
}

// writeRequestError reports a body that could not be read or parsed.
func writeRequestError(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
		return
	}
	middleware.WriteError(w, http.StatusBadRequest, "bad_request", "malformed request body")
}

// writeResponseError handles errors a handler did not map to a typed response.
// The cause is logged, never echoed.
func writeResponseError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	middleware.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// unwrapMessage extracts the human-readable part after the sentinel.
// e.g. "service.TripService.Create: validation error: country is required" gives "country is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
