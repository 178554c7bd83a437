package adapter

import "errors"

// Sentinel errors mapped from remote store HTTP status codes. Callers match
// them with [errors.Is] for transport-agnostic handling.
var (
	ErrBadRequest          = errors.New("remote store rejected request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("remote record not found")
	ErrConflict            = errors.New("remote record conflict")
	ErrBadGateway          = errors.New("remote store unreachable")
	ErrInternalServerError = errors.New("remote store internal error")
)
