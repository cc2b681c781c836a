package http

import (
	"encoding/json"
	"net/http"

	domain "github.com/cmlabs-hris/timesheet-core-go/internal/domain/payment"
	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/payment"
)

// PaymentHandler exposes the checkout workflow
type PaymentHandler struct {
	payments *payment.Service
}

func NewPaymentHandler(paymentSvc *payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: paymentSvc}
}

// State returns the workflow position. The error field is one-shot.
func (h *PaymentHandler) State(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.payments.State())
}

// Open starts collecting checkout input for one export artifact
func (h *PaymentHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payments.Open(req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.payments.State())
}

// Cancel abandons input collection
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.Cancel(); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.payments.State())
}

// Submit prices the intent and creates the checkout session
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	invoiceURL, err := h.payments.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, domain.CreatePaymentResponse{InvoiceURL: invoiceURL})
}
