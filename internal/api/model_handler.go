package api

import (
	"net/http"

	"guillama/backend/internal/interfaces"
)

// ModelHandler handles HTTP requests for model discovery.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List local models
// @Description  Lists the models installed on the model server. When the server is offline the last cached list is returned with from_cache set.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  service.ModelList
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models)
}

// HandleRefreshModels godoc
// @Summary      Refresh the model list
// @Description  Asks the model server for its models again and updates the offline cache.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  service.ModelList
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/models/refresh [post]
func (h *ModelHandler) HandleRefreshModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.Refresh(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models)
}

// HandleStatus godoc
// @Summary      Model server status
// @Description  Probes the model server root for its liveness banner.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  service.ServerStatus
// @Router       /v1/status [get]
func (h *ModelHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}
