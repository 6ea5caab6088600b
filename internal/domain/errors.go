package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound  = errors.New("domain: not found")
	ErrConflict  = errors.New("domain: conflict")
	ErrForbidden = errors.New("domain: forbidden")

	// ErrNoProfile marks a caller whose account has no linked researcher
	// profile. It is expected control flow, not a failure: the API layer
	// renders it as a benign error payload and never logs it.
	ErrNoProfile = errors.New("domain: no researcher profile")

	// ErrAlreadyAssigned is the conflict raised by a duplicate task join
	// request.
	ErrAlreadyAssigned = errors.New("domain: researcher already assigned")
)
