package reference

import "github.com/shopspring/decimal"

// SyncStatus values returned by the directory ingestion trigger
const (
	SyncStatusUpdated   = "updated"
	SyncStatusUnchanged = "unchanged"
)

// SyncResponse is the result of triggering a directory ingestion job
type SyncResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

// PricingResponse is the (possibly partial) fee schedule returned by the
// backend. Nil fields mean "keep the default".
type PricingResponse struct {
	TimesheetPrice    *decimal.Decimal `json:"timesheet_price,omitempty"`
	MandaysPrice      *decimal.Decimal `json:"mandays_price,omitempty"`
	FeeQRIS           *decimal.Decimal `json:"fee_qris,omitempty"`
	FeeVirtualAccount *decimal.Decimal `json:"fee_va,omitempty"`
	FeeRetailOutlet   *decimal.Decimal `json:"fee_retail,omitempty"`
}

// Apply overlays the present response fields onto a schedule
func (r PricingResponse) Apply(schedule PricingSchedule) PricingSchedule {
	if r.TimesheetPrice != nil {
		schedule.TimesheetPrice = *r.TimesheetPrice
	}
	if r.MandaysPrice != nil {
		schedule.MandaysPrice = *r.MandaysPrice
	}
	if r.FeeQRIS != nil {
		schedule.FeeQRIS = *r.FeeQRIS
	}
	if r.FeeVirtualAccount != nil {
		schedule.FeeVirtualAccount = *r.FeeVirtualAccount
	}
	if r.FeeRetailOutlet != nil {
		schedule.FeeRetailOutlet = *r.FeeRetailOutlet
	}
	return schedule
}
