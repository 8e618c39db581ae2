package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clipbook/internal/barbers/service"
	apperrors "clipbook/pkg/errors"
	httputil "clipbook/pkg/http"
	"clipbook/pkg/logger"
	"clipbook/pkg/model"
)

type BarberHandler struct {
	service service.BarberService
	log     *logger.Logger
}

func NewBarberHandler(service service.BarberService, log *logger.Logger) *BarberHandler {
	return &BarberHandler{
		service: service,
		log:     log,
	}
}

func (h *BarberHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var b model.Barber
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &b); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, b); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BarberHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("ID parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, b); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BarberHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	barbers, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, barbers); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BarberHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/barbers", h.Create)
	router.GET("/barbers", h.GetAll)
	router.GET("/barbers/:id", h.GetByID)
}
