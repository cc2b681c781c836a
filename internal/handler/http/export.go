package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/export"
)

// ExportHandler exposes document rendering: HTML preview and spreadsheet
// downloads. These endpoints stream the backend's artifact through as is.
type ExportHandler struct {
	exports *export.Service
}

func NewExportHandler(exportSvc *export.Service) *ExportHandler {
	return &ExportHandler{exports: exportSvc}
}

// Preview returns a printable HTML rendering of the current document
func (h *ExportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	exportType := timesheet.ExportType(chi.URLParam(r, "type"))
	if !exportType.Valid() {
		response.BadRequest(w, "Unknown export type", nil)
		return
	}

	artifact, err := h.exports.Preview(r.Context(), exportType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(artifact.Data)
}

// Generate returns the rendered spreadsheet as a download
func (h *ExportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	exportType := timesheet.ExportType(chi.URLParam(r, "type"))
	if !exportType.Valid() {
		response.BadRequest(w, "Unknown export type", nil)
		return
	}

	artifact, filename, err := h.exports.Generate(r.Context(), exportType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(artifact.Data)
}
