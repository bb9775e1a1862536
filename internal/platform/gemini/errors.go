package gemini

import "errors"

var (
	// ErrInvalidConfig is returned by NewNarrator for unusable settings.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrInvalidResponse means the model answered without usable text.
	ErrInvalidResponse = errors.New("invalid response from gemini")

	// ErrContentBlocked means the response was stopped by safety filters.
	ErrContentBlocked = errors.New("content blocked by gemini safety filters")

	// ErrTransientFailure wraps the last error once retries are exhausted.
	ErrTransientFailure = errors.New("transient gemini failure")
)
