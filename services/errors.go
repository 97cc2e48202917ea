package services

import "errors"

// Sentinel errors returned by services. Controllers translate these into
// HTTP status codes at the boundary; everything else maps to 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
