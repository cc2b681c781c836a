package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// Artifact is a rendered document returned by the backend
type Artifact struct {
	Data        []byte
	ContentType string
}

// PreviewHTML renders the document snapshot into a printable HTML page
func (c *Client) PreviewHTML(ctx context.Context, req timesheet.PreviewRequest) (*Artifact, error) {
	data, contentType, err := c.doRaw(ctx, http.MethodPost, "/api/preview-html", req)
	if err != nil {
		return nil, err
	}
	return &Artifact{Data: data, ContentType: contentType}, nil
}

// Generate renders the document snapshot into a spreadsheet for the given
// export type.
func (c *Client) Generate(ctx context.Context, req timesheet.PreviewRequest) (*Artifact, error) {
	if !timesheet.ExportType(req.Type).Valid() {
		return nil, fmt.Errorf("unknown export type: %s", req.Type)
	}
	data, contentType, err := c.doRaw(ctx, http.MethodPost, "/api/generate-"+req.Type, req)
	if err != nil {
		return nil, err
	}
	return &Artifact{Data: data, ContentType: contentType}, nil
}
