package persistence

import (
	"context"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// Slot is the versioned name of the durable key-value slot holding the
// document. Bump the suffix when the persisted shape changes incompatibly.
const Slot = "timesheet_data_v1"

// SnapshotStore persists the full document as one JSON blob. Save is an
// idempotent whole-snapshot overwrite; Load returns (nil, nil) when nothing
// has been saved yet. A corrupt stored value is discarded with a log line,
// never an error: startup must fall through to an empty document.
type SnapshotStore interface {
	Save(ctx context.Context, doc timesheet.Document) error
	Load(ctx context.Context) (*timesheet.Document, error)
}
