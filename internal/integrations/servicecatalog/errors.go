package servicecatalog

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog has no such service
	ErrServiceNotFound = errors.New("servicecatalog client: service not found")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("servicecatalog client: internal error")

	// ErrInvalidResponse is returned when the catalog answer cannot be used
	ErrInvalidResponse = errors.New("servicecatalog client: invalid response")
)
