package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConstraint   = errors.New("domain: constraint violation")
	ErrUnauthorized = errors.New("domain: unauthorized")
)
