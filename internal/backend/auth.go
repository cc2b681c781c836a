package backend

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/auth"
)

// Me resolves the user the current session token belongs to
func (c *Client) Me(ctx context.Context) (*auth.User, error) {
	var out auth.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
