package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/payment"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

// API is the slice of the backend client the checkout workflow consumes
type API interface {
	CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error)
}

// Pricing supplies the effective fee schedule at submission time
type Pricing interface {
	Schedule() reference.PricingSchedule
}

// Identity supplies the user id used to tag outgoing intents
type Identity interface {
	CurrentUserID() string
}

// Service drives the checkout workflow:
//
//	Idle -> CollectingInput -> Submitting -> Redirecting
//
// Redirecting is terminal; once the invoice URL is handed out, the payment
// provider and the backend own the rest. A failed submission returns to
// CollectingInput, never to Idle, so the entered email survives for a retry.
type Service struct {
	api      API
	docs     *store.Store
	pricing  Pricing
	identity Identity
	logger   *slog.Logger
	timeout  time.Duration

	mu         sync.Mutex
	state      payment.State
	exportType timesheet.ExportType
	email      string
	invoiceURL string
	lastError  string
}

func NewService(api API, docs *store.Store, pricing Pricing, identity Identity, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		docs:     docs,
		pricing:  pricing,
		identity: identity,
		logger:   logger,
		timeout:  timeout,
		state:    payment.StateIdle,
	}
}

// State returns the current workflow position. The error field is one-shot:
// reading it clears it.
func (s *Service) State() payment.StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := payment.StateResponse{
		State:      s.state,
		ExportType: s.exportType,
		Email:      s.email,
		InvoiceURL: s.invoiceURL,
		Error:      s.lastError,
	}
	s.lastError = ""
	return resp
}

// Open starts collecting checkout input for one export artifact. Only legal
// from Idle; a checkout that already reached the provider stays terminal.
func (s *Service) Open(req payment.OpenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case payment.StateIdle:
	case payment.StateSubmitting:
		return payment.ErrSubmitting
	case payment.StateRedirecting:
		return payment.ErrRedirected
	default:
		return payment.ErrNotIdle
	}

	s.state = payment.StateCollectingInput
	s.exportType = req.ExportType
	s.email = ""
	s.invoiceURL = ""
	s.lastError = ""
	return nil
}

// Cancel abandons input collection and returns to Idle
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case payment.StateCollectingInput:
	case payment.StateSubmitting:
		return payment.ErrSubmitting
	case payment.StateRedirecting:
		return payment.ErrRedirected
	default:
		return payment.ErrNotCollecting
	}

	s.state = payment.StateIdle
	s.exportType = ""
	s.email = ""
	return nil
}

// Submit validates the checkout input, prices the intent and creates the
// checkout session. Validation failures are caught before any network call.
// On success the workflow transitions to Redirecting and the invoice URL is
// returned.
func (s *Service) Submit(ctx context.Context, req payment.SubmitRequest) (string, error) {
	s.mu.Lock()

	switch s.state {
	case payment.StateCollectingInput:
	case payment.StateSubmitting:
		s.mu.Unlock()
		return "", payment.ErrSubmitting
	case payment.StateRedirecting:
		s.mu.Unlock()
		return "", payment.ErrRedirected
	default:
		s.mu.Unlock()
		return "", payment.ErrNotCollecting
	}

	// Retain the input either way so a failed attempt can be corrected
	// instead of retyped.
	s.email = req.Email

	if err := req.Validate(); err != nil {
		s.mu.Unlock()
		return "", err
	}

	schedule := s.pricing.Schedule()
	base, ok := schedule.BasePrice(s.exportType)
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("no base price for export type: %s", s.exportType)
	}
	fee, ok := schedule.FeeFor(string(req.Category))
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("no fee for category: %s", req.Category)
	}

	intent := payment.CreatePaymentRequest{
		Category:   req.Category,
		Email:      req.Email,
		ExportType: s.exportType,
		Total:      base.Add(fee),
		UserID:     s.identity.CurrentUserID(),
		Document:   s.docs.Document(),
	}

	s.state = payment.StateSubmitting
	s.mu.Unlock()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.api.CreatePayment(callCtx, intent)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = payment.StateCollectingInput
		s.lastError = "payment could not be started, please try again"
		s.logger.Error("create payment", "error", err, "export_type", s.exportType)
		return "", fmt.Errorf("create payment: %w", err)
	}

	s.state = payment.StateRedirecting
	s.invoiceURL = resp.InvoiceURL
	return resp.InvoiceURL, nil
}
