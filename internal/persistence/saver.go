package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// Saver mirrors every document mutation into a SnapshotStore. Notifications
// within the coalescing window collapse into one write of the newest
// snapshot, so a burst of edits does not become a save storm. Saves are
// serialized on one goroutine: the last save always reflects the latest
// mutation.
type Saver struct {
	store  SnapshotStore
	logger *slog.Logger
	window time.Duration

	mu     sync.Mutex
	latest *timesheet.Document

	wake chan struct{}
}

func NewSaver(store SnapshotStore, logger *slog.Logger, window time.Duration) *Saver {
	return &Saver{
		store:  store,
		logger: logger,
		window: window,
		wake:   make(chan struct{}, 1),
	}
}

// Notify records the newest snapshot and wakes the save loop. It is cheap
// and non-blocking, safe to call synchronously from a mutation listener.
func (s *Saver) Notify(doc timesheet.Document) {
	s.mu.Lock()
	s.latest = &doc
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run drives the save loop until the context is cancelled, then performs a
// final flush so no pending edit is lost on shutdown.
func (s *Saver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.flush(context.WithoutCancel(ctx))
			return
		case <-s.wake:
			if s.window > 0 {
				timer := time.NewTimer(s.window)
				select {
				case <-ctx.Done():
					timer.Stop()
					s.flush(context.WithoutCancel(ctx))
					return
				case <-timer.C:
				}
			}
			s.flush(ctx)
		}
	}
}

func (s *Saver) flush(ctx context.Context) {
	s.mu.Lock()
	doc := s.latest
	s.latest = nil
	s.mu.Unlock()

	if doc == nil {
		return
	}
	if err := s.store.Save(ctx, *doc); err != nil {
		s.logger.Error("save document snapshot", "error", err)
	}
}
