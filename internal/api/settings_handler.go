package api

import (
	"net/http"

	"guillama/backend/internal/interfaces"
	"guillama/backend/internal/service"
)

// SettingsHandler serves the application preferences.
type SettingsHandler struct {
	service interfaces.SettingsService
}

func NewSettingsHandler(svc interfaces.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// HandleGetSettings godoc
// @Summary      Get settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *SettingsHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// HandleUpdateSettings godoc
// @Summary      Update settings
// @Description  Saves every setting. The default model is checked against the model server when it is reachable.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      service.Settings  true  "Settings"
// @Success      200       {object}  service.Settings
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/settings [put]
func (h *SettingsHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req service.Settings
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.Save(r.Context(), &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, req)
}

// HandleToggleDarkMode godoc
// @Summary      Toggle dark mode
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings/dark-mode/toggle [post]
func (h *SettingsHandler) HandleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.ToggleDarkMode(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}
