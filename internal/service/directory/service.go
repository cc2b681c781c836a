package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/inflight"
)

// API is the slice of the backend client the directory service consumes
type API interface {
	TriggerSync(ctx context.Context) (*reference.SyncResponse, error)
	ListAssignees(ctx context.Context) ([]string, error)
}

const syncKey = "directory.sync"

// Service reconciles the known-assignees directory. The server is
// authoritative: every successful fetch replaces the local list wholesale,
// and a failed fetch leaves the previous list untouched.
type Service struct {
	api     API
	flights *inflight.Registry
	logger  *slog.Logger
	minBusy time.Duration

	mu        sync.RWMutex
	assignees []string
}

func NewService(api API, flights *inflight.Registry, minBusy time.Duration, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		flights: flights,
		logger:  logger,
		minBusy: minBusy,
	}
}

// Assignees returns the current directory in server order
func (s *Service) Assignees() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.assignees))
	copy(out, s.assignees)
	return out
}

// Busy reports whether a force-sync is in flight
func (s *Service) Busy() bool {
	return s.flights.Active(syncKey)
}

// Refresh fetches the directory and replaces the local list. On failure the
// existing list stays as is; callers decide whether the error is worth more
// than a log line.
func (s *Service) Refresh(ctx context.Context) error {
	list, err := s.api.ListAssignees(ctx)
	if err != nil {
		return fmt.Errorf("fetch assignee directory: %w", err)
	}

	s.mu.Lock()
	s.assignees = list
	s.mu.Unlock()
	return nil
}

// ForceSync triggers the server-side ingestion job and refetches the
// directory afterwards. Only one sync runs at a time; a second call while
// one is in flight returns reference.ErrSyncInFlight and does nothing.
func (s *Service) ForceSync(ctx context.Context) (string, error) {
	if !s.flights.TryAcquire(syncKey) {
		return "", reference.ErrSyncInFlight
	}
	defer s.flights.Release(syncKey)

	started := time.Now()

	resp, err := s.api.TriggerSync(ctx)
	if err != nil {
		return "", fmt.Errorf("trigger directory sync: %w", err)
	}

	if err := s.Refresh(ctx); err != nil {
		// The ingestion itself succeeded, keep the stale list and report
		// the sync result.
		s.logger.Error("refresh directory after sync", "error", err)
	}

	s.holdBusy(ctx, started)

	switch resp.Status {
	case reference.SyncStatusUpdated:
		return fmt.Sprintf("Directory updated, %d entries ingested", resp.Count), nil
	case reference.SyncStatusUnchanged:
		return "Directory already up to date", nil
	default:
		return "", fmt.Errorf("unexpected sync status: %s", resp.Status)
	}
}

// holdBusy keeps the busy flag raised for a minimum duration so a fast sync
// still produces visible feedback.
func (s *Service) holdBusy(ctx context.Context, started time.Time) {
	remaining := s.minBusy - time.Since(started)
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
