package http

import (
	"encoding/json"
	"net/http"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/settings"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Deploy(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Deploy implements SettingsHandler. The whole rule set is replaced in
// one shot; there is no partial update.
func (h *settingsHandlerImpl) Deploy(w http.ResponseWriter, r *http.Request) {
	var req settings.DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ActorID = userIDFromClaims(r)

	result, err := h.settingsService.Deploy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings deployed", result)
}
