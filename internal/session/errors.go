package session

import "errors"

// Precondition failures, detected locally before any network attempt.
var (
	// ErrNotInitialized is returned by SyncUser when Initialize has not
	// completed successfully (no project id is held).
	ErrNotInitialized = errors.New("mobiqo: sdk not initialized")

	// ErrUserNotSynced is returned by TrackEvent and UpdateUser when no
	// session is open (Initialize and SyncUser have not both completed).
	ErrUserNotSynced = errors.New("mobiqo: sdk not initialized or user not synced")
)
