package backend

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
)

// TriggerSync asks the backend to run its directory ingestion job
func (c *Client) TriggerSync(ctx context.Context) (*reference.SyncResponse, error) {
	var out reference.SyncResponse
	if err := c.do(ctx, http.MethodPost, "/api/sync", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAssignees fetches the server-authoritative assignee directory
func (c *Client) ListAssignees(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/assignees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
