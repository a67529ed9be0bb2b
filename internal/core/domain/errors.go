package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionInFlight indicates an extraction is already running
	ErrExtractionInFlight = errors.New("extraction already in progress")

	// ErrNotEnoughDocuments indicates an operation needs more documents
	// than the library currently holds
	ErrNotEnoughDocuments = errors.New("not enough documents")

	// ErrSelectionTooShort indicates the selected text is below the
	// minimum length for the requested generation
	ErrSelectionTooShort = errors.New("selected text too short")

	// ErrServiceUnavailable indicates an AI collaborator could not be
	// reached or refused the request
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrIndexClearFailed indicates the remote document index could not
	// be cleared; a local-only reset remains available
	ErrIndexClearFailed = errors.New("index clear failed")
)
