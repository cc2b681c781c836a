package backend

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
)

// Pricing fetches the current fee schedule. The response may be partial;
// callers overlay it onto the compiled-in defaults.
func (c *Client) Pricing(ctx context.Context) (*reference.PricingResponse, error) {
	var out reference.PricingResponse
	if err := c.do(ctx, http.MethodGet, "/api/pricing", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
