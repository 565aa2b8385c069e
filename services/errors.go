package services

import "errors"

var (
	// ErrEntryNotFound is returned when a meal entry does not exist or
	// belongs to a different user.
	ErrEntryNotFound = errors.New("meal entry not found")

	// ErrProfileMissing is returned when an operation needs a profile but
	// onboarding was never completed.
	ErrProfileMissing = errors.New("onboarding not completed")
)
