package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timesheet-core-go/internal/backend"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

// API is the slice of the backend client the export service consumes
type API interface {
	PreviewHTML(ctx context.Context, req timesheet.PreviewRequest) (*backend.Artifact, error)
	Generate(ctx context.Context, req timesheet.PreviewRequest) (*backend.Artifact, error)
}

// Service renders the current document into deliverables. The rendering
// itself happens on the backend; this service owns snapshotting the document
// and naming the downloaded file.
type Service struct {
	api    API
	docs   *store.Store
	logger *slog.Logger
}

func NewService(api API, docs *store.Store, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		docs:   docs,
		logger: logger,
	}
}

func (s *Service) snapshot(exportType timesheet.ExportType) timesheet.PreviewRequest {
	doc := s.docs.Document()
	return timesheet.PreviewRequest{
		Type:          string(exportType),
		Employee:      doc.Employee,
		Tasks:         doc.RegularTasks,
		OvertimeTasks: doc.OvertimeTasks,
	}
}

// Preview renders a printable HTML view of the document
func (s *Service) Preview(ctx context.Context, exportType timesheet.ExportType) (*backend.Artifact, error) {
	if !exportType.Valid() {
		return nil, fmt.Errorf("unknown export type: %s", exportType)
	}
	return s.api.PreviewHTML(ctx, s.snapshot(exportType))
}

// Generate renders the document into a spreadsheet and returns the artifact
// together with a download filename.
func (s *Service) Generate(ctx context.Context, exportType timesheet.ExportType) (*backend.Artifact, string, error) {
	if !exportType.Valid() {
		return nil, "", fmt.Errorf("unknown export type: %s", exportType)
	}

	req := s.snapshot(exportType)
	artifact, err := s.api.Generate(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return artifact, filename(exportType, req.Employee), nil
}

func filename(exportType timesheet.ExportType, emp timesheet.EmployeeProfile) string {
	parts := []string{string(exportType)}
	if emp.ReportName != "" {
		parts = append(parts, emp.ReportName)
	}
	if emp.Month != "" {
		parts = append(parts, emp.Month)
	}
	name := strings.Join(parts, "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name + ".xlsx"
}
