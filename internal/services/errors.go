package services

import "errors"

var (
	// ErrConfiguration is returned by New when a required setting is missing.
	ErrConfiguration = errors.New("rating prompt: invalid configuration")

	// ErrCapabilityUnavailable is returned by RequestReview when no native review can be shown.
	ErrCapabilityUnavailable = errors.New("rating prompt: native review unavailable")
)

// ErrInvalidChoice is returned when a presenter answers with an action the dialog did not offer.
var ErrInvalidChoice = errors.New("rating prompt: presenter returned an action not offered by the dialog")
