package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/directory"
)

// DirectoryHandler exposes the assignee directory and its sync trigger
type DirectoryHandler struct {
	directory *directory.Service
}

func NewDirectoryHandler(directorySvc *directory.Service) *DirectoryHandler {
	return &DirectoryHandler{directory: directorySvc}
}

// List returns the cached directory in server order
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"assignees": h.directory.Assignees(),
		"syncing":   h.directory.Busy(),
	})
}

// Refresh refetches the directory without triggering ingestion
func (h *DirectoryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"assignees": h.directory.Assignees(),
	})
}

// ForceSync triggers the server-side ingestion job and refetches
func (h *DirectoryHandler) ForceSync(w http.ResponseWriter, r *http.Request) {
	msg, err := h.directory.ForceSync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, msg, map[string]interface{}{
		"assignees": h.directory.Assignees(),
	})
}
