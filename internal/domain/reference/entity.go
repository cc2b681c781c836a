package reference

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// PricingSchedule holds the export base prices and the per-channel payment
// fees, in IDR. Fields the server omits keep their compiled-in defaults.
type PricingSchedule struct {
	TimesheetPrice    decimal.Decimal `json:"timesheet_price"`
	MandaysPrice      decimal.Decimal `json:"mandays_price"`
	FeeQRIS           decimal.Decimal `json:"fee_qris"`
	FeeVirtualAccount decimal.Decimal `json:"fee_va"`
	FeeRetailOutlet   decimal.Decimal `json:"fee_retail"`
}

// DefaultPricing returns the compiled-in fallback schedule used when the
// pricing endpoint is unavailable or returns a partial response.
func DefaultPricing() PricingSchedule {
	return PricingSchedule{
		TimesheetPrice:    decimal.NewFromInt(20000),
		MandaysPrice:      decimal.NewFromInt(20000),
		FeeQRIS:           decimal.NewFromInt(1500),
		FeeVirtualAccount: decimal.NewFromInt(4500),
		FeeRetailOutlet:   decimal.NewFromInt(6500),
	}
}

// BasePrice returns the base price for an export artifact
func (p PricingSchedule) BasePrice(exportType timesheet.ExportType) (decimal.Decimal, bool) {
	switch exportType {
	case timesheet.ExportTimesheet:
		return p.TimesheetPrice, true
	case timesheet.ExportMandays:
		return p.MandaysPrice, true
	}
	return decimal.Zero, false
}

// FeeFor returns the payment fee for a channel category key
// (qris, virtual_account or retail_outlet).
func (p PricingSchedule) FeeFor(category string) (decimal.Decimal, bool) {
	switch category {
	case "qris":
		return p.FeeQRIS, true
	case "virtual_account":
		return p.FeeVirtualAccount, true
	case "retail_outlet":
		return p.FeeRetailOutlet, true
	}
	return decimal.Zero, false
}
