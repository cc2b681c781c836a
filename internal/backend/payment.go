package backend

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/payment"
)

// CreatePayment starts a checkout for the given intent and returns the
// external invoice URL. The caller bounds the call with its own deadline;
// an unresolved request here would strand the submit flow.
func (c *Client) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	var out payment.CreatePaymentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
