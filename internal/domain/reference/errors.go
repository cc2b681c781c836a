package reference

import "errors"

var (
	// ErrSyncInFlight is returned when a force-sync is requested while a
	// previous sync has not finished yet. The second request is a no-op.
	ErrSyncInFlight = errors.New("directory sync already in progress")
)
