package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/enhance"
	"github.com/cmlabs-hris/timesheet-core-go/internal/store"
)

// DocumentHandler exposes the document store and the per-row enhancement
// controller.
type DocumentHandler struct {
	docs     *store.Store
	enhancer *enhance.Service
}

func NewDocumentHandler(docs *store.Store, enhancer *enhance.Service) *DocumentHandler {
	return &DocumentHandler{
		docs:     docs,
		enhancer: enhancer,
	}
}

// Get returns the current document snapshot
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.docs.Document())
}

// UpdateProfile applies a partial profile edit
func (h *DocumentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.docs.UpdateProfile(req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.docs.Document().Employee)
}

// AddTask appends a blank row to the addressed list
func (h *DocumentHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	collection := timesheet.Collection(chi.URLParam(r, "collection"))

	switch collection {
	case timesheet.CollectionRegular:
		response.Success(w, h.docs.AppendRegularTask())
	case timesheet.CollectionOvertime:
		response.Success(w, h.docs.AppendOvertimeTask())
	default:
		response.HandleError(w, timesheet.ErrUnknownCollection)
	}
}

// UpdateTask applies a partial row edit
func (h *DocumentHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	collection, index, ok := taskPosition(w, r)
	if !ok {
		return
	}

	var req timesheet.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.docs.UpdateTask(collection, index, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.docs.Document())
}

// RemoveTask deletes the row at the addressed position
func (h *DocumentHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	collection, index, ok := taskPosition(w, r)
	if !ok {
		return
	}

	if err := h.docs.RemoveTask(collection, index); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.docs.Document())
}

// Enhance rewrites the description of the addressed row through the backend
func (h *DocumentHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	collection, index, ok := taskPosition(w, r)
	if !ok {
		return
	}

	if err := h.enhancer.Enhance(r.Context(), collection, index); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.docs.Document())
}

func taskPosition(w http.ResponseWriter, r *http.Request) (timesheet.Collection, int, bool) {
	collection := timesheet.Collection(chi.URLParam(r, "collection"))
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Invalid task index", nil)
		return "", 0, false
	}
	return collection, index, true
}
