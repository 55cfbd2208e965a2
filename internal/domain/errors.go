package domain

import "errors"

// Error kinds. Every error returned across a package boundary wraps exactly one of them,
// so transports can map errors with errors.Is without knowing the specific sentinel.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)
