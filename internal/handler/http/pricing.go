package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/pricing"
)

// PricingHandler exposes the effective fee schedule
type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(pricingSvc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: pricingSvc}
}

// Get returns the effective schedule. A load that never succeeded still
// answers with the compiled-in defaults.
func (h *PricingHandler) Get(w http.ResponseWriter, r *http.Request) {
	// Default pricing is better than no pricing, a failed load is not fatal.
	_ = h.pricing.Load(r.Context())
	response.Success(w, h.pricing.Schedule())
}
