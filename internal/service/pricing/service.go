package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
)

// API is the slice of the backend client the pricing cache consumes
type API interface {
	Pricing(ctx context.Context) (*reference.PricingResponse, error)
}

// Service caches the fee schedule for the session. It starts from the
// compiled-in defaults, overlays whatever fields the backend returns, and
// keeps serving the last known schedule when a fetch fails. Checkout math
// must never block on pricing.
type Service struct {
	api    API
	logger *slog.Logger

	mu       sync.RWMutex
	schedule reference.PricingSchedule
	loaded   bool
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		logger:   logger,
		schedule: reference.DefaultPricing(),
	}
}

// Schedule returns the effective fee schedule
func (s *Service) Schedule() reference.PricingSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// Load fetches the schedule once per session. Later calls are no-ops after
// a successful fetch; a failed fetch keeps the defaults and may be retried.
func (s *Service) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	resp, err := s.api.Pricing(ctx)
	if err != nil {
		return fmt.Errorf("fetch pricing schedule: %w", err)
	}

	s.mu.Lock()
	s.schedule = resp.Apply(reference.DefaultPricing())
	s.loaded = true
	s.mu.Unlock()
	return nil
}
