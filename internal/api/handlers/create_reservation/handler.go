package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/WatReservationService/internal/api/handlers"
	"github.com/m04kA/WatReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/WatReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput           = "некорректные данные бронирования"
	msgPastDate               = "дата бронирования уже прошла"
	msgInvalidCremationWindow = "дата кремации должна быть не раньше окончания бронирования"
	msgOccupancyFull          = "храм полностью занят на выбранные даты"
	msgCremationFull          = "на выбранную дату кремации нет свободных мест"
	msgConcurrent             = "бронирование изменено параллельно, повторите запрос"
	msgTempleNotFound         = "храм не найден"
	msgRequesterNotFound      = "пользователь не найден"
	msgIdentityUnavailable    = "сервис пользователей недоступен"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.UserID == "" {
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.UserID = userID
		}
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrPastDate):
			handlers.RespondConflict(w, msgPastDate)

		case errors.Is(err, createReservation.ErrInvalidCremationWindow):
			handlers.RespondConflict(w, msgInvalidCremationWindow)

		case errors.Is(err, createReservation.ErrCapacityExceededOccupancy):
			h.logger.Warn("POST /reservations - Wat fully booked: wat_id=%s", req.TempleID)
			handlers.RespondConflict(w, msgOccupancyFull)

		case errors.Is(err, createReservation.ErrCapacityExceededCremation):
			h.logger.Warn("POST /reservations - No cremation slots: wat_id=%s, date=%s", req.TempleID, req.CremationDate)
			handlers.RespondConflict(w, msgCremationFull)

		case errors.Is(err, createReservation.ErrConcurrentModification):
			handlers.RespondConflict(w, msgConcurrent)

		case errors.Is(err, createReservation.ErrTempleNotFound):
			handlers.RespondNotFound(w, msgTempleNotFound)

		case errors.Is(err, createReservation.ErrRequesterNotFound):
			handlers.RespondNotFound(w, msgRequesterNotFound)

		case errors.Is(err, createReservation.ErrIdentityUnavailable):
			h.logger.Error("POST /reservations - Identity service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgIdentityUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: wat_id=%s, user_id=%s, error=%v",
				req.TempleID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, wat_id=%s, user_id=%s",
		result.ID, result.TempleID, result.RequesterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
