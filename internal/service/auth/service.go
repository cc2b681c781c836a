package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"

	domain "github.com/cmlabs-hris/timesheet-core-go/internal/domain/auth"
)

// API is the slice of the backend client the session keeper consumes
type API interface {
	Me(ctx context.Context) (*domain.User, error)
}

// Service keeps the session token and the identity it resolves to. The token
// lifecycle (issuing, refreshing) belongs to the remote auth subsystem; this
// service only holds the current token, drops it when the backend rejects it
// and resolves who it belongs to so payment intents can be tagged.
type Service struct {
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	user  *domain.User
}

func NewService(token string, logger *slog.Logger) *Service {
	return &Service{
		token:  token,
		logger: logger,
	}
}

// Token returns the current session token, or empty when the session has
// been invalidated. Satisfies the backend client's token source.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Invalidate drops the token and the resolved identity. Called when the
// backend answers 401/403, so later requests go out unauthenticated instead
// of repeating a rejected token.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// CurrentUser returns the resolved identity, or nil when the session is
// anonymous or not resolved yet.
func (s *Service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// CurrentUserID returns the best available user id for tagging outgoing
// intents: the resolved identity when present, otherwise the token's subject
// claim, otherwise empty.
func (s *Service) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user != nil {
		return s.user.ID
	}
	if s.token == "" {
		return ""
	}
	parsed, err := jwt.ParseInsecure([]byte(s.token))
	if err != nil {
		return ""
	}
	return parsed.Subject()
}

// Resolve checks the session against the backend and caches the identity.
// A token that is already past its expiry claim is dropped locally without
// a network round trip. Resolution failures other than rejection keep the
// token so a later retry can still succeed.
func (s *Service) Resolve(ctx context.Context, api API) error {
	token := s.Token()
	if token == "" {
		return nil
	}

	if expired(token) {
		s.logger.Info("dropping expired session token")
		s.Invalidate()
		return nil
	}

	user, err := api.Me(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func expired(token string) bool {
	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		// Opaque tokens carry no expiry claim, let the backend judge them.
		return false
	}
	exp := parsed.Expiration()
	return !exp.IsZero() && exp.Before(time.Now())
}
