package enhance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

// API is the slice of the backend client the enhancement controller consumes
type API interface {
	EnhanceDescription(ctx context.Context, text string) (string, error)
}

// Service rewrites one task description at a time through the backend.
// Exclusivity is per row identity, not per index: the row is pinned by id
// before the request goes out, so a removal or reorder mid flight can never
// land the result on the wrong row.
type Service struct {
	api     API
	store   *store.Store
	flights *inflight.Registry
	logger  *slog.Logger
}

func NewService(api API, docs *store.Store, flights *inflight.Registry, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		store:   docs,
		flights: flights,
		logger:  logger,
	}
}

func rowKey(collection timesheet.Collection, id string) string {
	return fmt.Sprintf("enhance.%s.%s", collection, id)
}

// RowBusy reports whether an enhancement for the row is in flight
func (s *Service) RowBusy(collection timesheet.Collection, id string) bool {
	return s.flights.Active(rowKey(collection, id))
}

// Enhance rewrites the description of the task at the given position.
// A missing row or an empty description is a silent no-op. A second call
// for the same row while one is in flight returns
// timesheet.ErrEnhancementInFlight.
func (s *Service) Enhance(ctx context.Context, collection timesheet.Collection, index int) error {
	id, err := s.store.TaskID(collection, index)
	if err != nil {
		if errors.Is(err, timesheet.ErrTaskNotFound) {
			return nil
		}
		return err
	}

	text, ok := s.store.TaskDescription(collection, id)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}

	key := rowKey(collection, id)
	if !s.flights.TryAcquire(key) {
		return timesheet.ErrEnhancementInFlight
	}
	defer s.flights.Release(key)

	enhanced, err := s.api.EnhanceDescription(ctx, text)
	if err != nil {
		return fmt.Errorf("enhance description: %w", err)
	}

	if err := s.store.SetTaskDescription(collection, id, enhanced); err != nil {
		if errors.Is(err, timesheet.ErrTaskNotFound) {
			// Row was removed while the request was in flight, drop the
			// result.
			s.logger.Info("dropping enhancement result for removed row",
				"collection", collection, "row_id", id)
			return nil
		}
		return err
	}

	return nil
}
