package timesheet

import "errors"

var (
	// Document errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrUnknownCollection = errors.New("unknown task collection")
	ErrInvalidPeriod     = errors.New("period start must not be after period end")

	// Enhancement errors
	ErrEnhancementInFlight = errors.New("an enhancement for this row is already in flight")
)
