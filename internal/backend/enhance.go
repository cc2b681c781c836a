package backend

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// EnhanceDescription asks the backend to rewrite one task description
func (c *Client) EnhanceDescription(ctx context.Context, text string) (string, error) {
	var out timesheet.EnhanceResponse
	err := c.do(ctx, http.MethodPost, "/api/enhance-description", timesheet.EnhanceRequest{Text: text}, &out)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
