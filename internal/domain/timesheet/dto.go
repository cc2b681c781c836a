package timesheet

import (
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/validator"
)

// ==================== Request DTOs ====================

// UpdateProfileRequest carries a partial profile edit. Nil fields are left
// untouched. Month is derived and cannot be set directly.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	ReportName  *string `json:"report_name,omitempty"`
	No          *string `json:"no,omitempty"`
	ClientSite  *string `json:"client_site,omitempty"`
	WorkUnit    *string `json:"work_unit,omitempty"`
	DeptHead    *string `json:"dept_head,omitempty"`
	Supervisor  *string `json:"supervisor,omitempty"`
	Squad       *string `json:"squad,omitempty"`
	PeriodStart *string `json:"period_start,omitempty"`
	PeriodEnd   *string `json:"period_end,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodStart != nil && *r.PeriodStart != "" {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be a YYYY-MM-DD date"})
		}
	}
	if r.PeriodEnd != nil && *r.PeriodEnd != "" {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be a YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateTaskRequest carries a partial row edit for either task list.
// Duration and Remarks only apply to overtime rows.
type UpdateTaskRequest struct {
	Date         *string  `json:"date,omitempty"`
	Description  *string  `json:"description,omitempty"`
	TicketNumber *string  `json:"ticket_number,omitempty"`
	TicketLink   *string  `json:"ticket_link,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be a YYYY-MM-DD date"})
		}
	}
	if r.Duration != nil && *r.Duration <= 0 {
		errs = append(errs, validator.ValidationError{Field: "duration", Message: "duration must be a positive number of hours"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ==================== Backend DTOs ====================

// PreviewRequest is the payload sent to the preview renderer
type PreviewRequest struct {
	Type          string          `json:"type,omitempty"`
	Employee      EmployeeProfile `json:"employee"`
	Tasks         []Task          `json:"tasks"`
	OvertimeTasks []OvertimeTask  `json:"overtimeTasks"`
}

// EnhanceRequest is the payload for the description rewriting service
type EnhanceRequest struct {
	Text string `json:"text"`
}

// EnhanceResponse is the rewritten description
type EnhanceResponse struct {
	Text string `json:"text"`
}
