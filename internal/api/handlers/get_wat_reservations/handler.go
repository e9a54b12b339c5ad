package get_wat_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WatReservationService/internal/api/handlers"
	"github.com/m04kA/WatReservationService/internal/service/reservations"
	"github.com/m04kA/WatReservationService/internal/service/reservations/models"
)

const (
	msgInvalidStatus  = "некорректный статус"
	msgNoReservations = "у храма нет бронирований"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/wats/{watId}/reservations?status=accepted
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetTempleReservationsRequest{TempleID: mux.Vars(r)["watId"]}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetByTemple(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrNoReservations):
			handlers.RespondConflict(w, msgNoReservations)

		default:
			h.logger.Error("GET /wats/{id}/reservations - Failed to get reservations: wat_id=%s, error=%v", req.TempleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
