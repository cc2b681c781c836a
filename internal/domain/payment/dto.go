package payment

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/validator"
)

// ==================== Request DTOs ====================

// OpenRequest starts collecting checkout input for one export artifact
type OpenRequest struct {
	ExportType timesheet.ExportType `json:"export_type"`
}

func (r *OpenRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.ExportType.Valid() {
		errs = append(errs, validator.ValidationError{Field: "export_type", Message: "export_type must be 'timesheet' or 'mandays'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitRequest carries the user's checkout input
type SubmitRequest struct {
	Email    string   `json:"email"`
	Category Category `json:"category"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if !r.Category.Valid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category must be 'qris', 'virtual_account' or 'retail_outlet'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ==================== Backend DTOs ====================

// CreatePaymentRequest is the intent posted to create a checkout session.
// It carries a full snapshot of the document at submission time; the backend
// is the system of record once the session exists.
type CreatePaymentRequest struct {
	Category   Category             `json:"category"`
	Email      string               `json:"email"`
	ExportType timesheet.ExportType `json:"export_type"`
	Total      decimal.Decimal      `json:"total"`
	UserID     string               `json:"user_id,omitempty"`
	Document   timesheet.Document   `json:"document"`
}

// CreatePaymentResponse is the created checkout session
type CreatePaymentResponse struct {
	InvoiceURL string `json:"invoiceUrl"`
}

// ==================== Response DTOs ====================

// StateResponse is the workflow position as seen by the view layer.
// Error is one-shot: it is cleared once reported.
type StateResponse struct {
	State      State                `json:"state"`
	ExportType timesheet.ExportType `json:"export_type,omitempty"`
	Email      string               `json:"email,omitempty"`
	InvoiceURL string               `json:"invoice_url,omitempty"`
	Error      string               `json:"error,omitempty"`
}
