package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist for the calling user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing country, exit date before entry date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a trip would overlap another trip of the same
// traveller. The wrapped message names the conflicting trip.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when a request carries no usable user identity.
var ErrUnauthorized = errors.New("unauthorized")
