package service

import "errors"

var (
	// ErrComparisonUnavailable is returned when the local or the remote
	// freshness timestamp could not be obtained after retries. The engine
	// never guesses a direction; the sync fails outright.
	ErrComparisonUnavailable = errors.New("cannot compare repository timestamps")

	// ErrSyncInProgress is returned when a sync is requested while a
	// previous one is still in flight. The request is rejected
	// synchronously, never queued.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoLocalProfile is returned when a push finds no profile record in
	// the local repository.
	ErrNoLocalProfile = errors.New("no local profile to push")
)
