package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clipbook/internal/seed/service"
	httputil "clipbook/pkg/http"
	"clipbook/pkg/logger"
)

type SeedResponse struct {
	Message        string `json:"message"`
	BarbersSeeded  int    `json:"barbers_seeded"`
	ServicesSeeded int    `json:"services_seeded"`
}

type SeedHandler struct {
	service service.SeedService
	log     *logger.Logger
}

func NewSeedHandler(service service.SeedService, log *logger.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		log:     log,
	}
}

func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.Seed(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Seed", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, SeedResponse{
		Message:        "Seeded",
		BarbersSeeded:  result.BarbersSeeded,
		ServicesSeeded: result.ServicesSeeded,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Seed", "operation", "WriteJSON", "error", err)
	}
}

func (h *SeedHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/seed", h.Seed)
}
