package http

import (
	"net/http"

	domain "github.com/cmlabs-hris/timesheet-core-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-core-go/internal/service/auth"
)

// AuthHandler exposes the resolved session identity
type AuthHandler struct {
	sessions *auth.Service
}

func NewAuthHandler(sessions *auth.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Me returns the identity the current session resolves to
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		response.HandleError(w, domain.ErrUnauthorized)
		return
	}

	response.Success(w, domain.MeResponse{User: *user})
}
