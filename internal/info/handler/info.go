package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "clipbook/pkg/http"
	"clipbook/pkg/logger"
)

type InfoResponse struct {
	Name      string            `json:"name"`
	Endpoints map[string]string `json:"endpoints"`
}

// InfoHandler serves the API index at the root path.
type InfoHandler struct {
	log *logger.Logger
}

func NewInfoHandler(log *logger.Logger) *InfoHandler {
	return &InfoHandler{log: log}
}

func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, InfoResponse{
		Name: "Barbershop Booking API",
		Endpoints: map[string]string{
			"barbers":      "GET /barbers, POST /barbers, GET /barbers/:id",
			"services":     "GET /services, POST /services, GET /services/:id",
			"availability": "GET /availability?barber_id=&date=YYYY-MM-DD",
			"appointments": "GET /appointments, POST /appointments, DELETE /appointments/:id",
			"seed":         "POST /seed",
			"health":       "GET /health, GET /ready",
		},
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Root", "operation", "WriteJSON", "error", err)
	}
}

func (h *InfoHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
}
