package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential means the Google ID token failed verification.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrUnknownUser means the submitted owner id has no Users row.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoLogs distinguishes "user has no logs" from a store failure.
	ErrNoLogs = errors.New("no logs found for this user")

	// ErrInvalidSleepQuality means sleep_quality was present but not one of
	// the accepted values.
	ErrInvalidSleepQuality = errors.New("sleep_quality must be Good, Average or Poor")
)

// MissingFieldError names the first required field absent from a log
// submission, in the fixed field order the submission contract defines.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}
