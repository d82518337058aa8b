package models

import "errors"

var (
	// ErrLookupMiss indicates an activity id that does not resolve.
	ErrLookupMiss = errors.New("activity not found")

	// ErrMalformedModel indicates a model that breaks its shape invariants,
	// such as duplicate activity ids. Analysis results would be meaningless.
	ErrMalformedModel = errors.New("malformed model")

	// ErrInvalidDocument indicates input that is not a GO-CAM document.
	ErrInvalidDocument = errors.New("invalid GO-CAM document")
)
