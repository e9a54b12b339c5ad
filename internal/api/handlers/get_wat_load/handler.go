package get_wat_load

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/WatReservationService/internal/api/handlers"
	"github.com/m04kA/WatReservationService/internal/domain"
	getTempleLoad "github.com/m04kA/WatReservationService/internal/usecase/get_temple_load"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange        = "некорректный диапазон дат"
	msgTempleNotFound      = "храм не найден"
	msgIdentityUnavailable = "сервис храмов недоступен"
	msgLoadFailed          = "не удалось получить загрузку храма"
)

type Handler struct {
	useCase GetTempleLoadUseCase
	logger  Logger
}

func NewHandler(useCase GetTempleLoadUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/wats/{watId}/load?from=2024-10-01&to=2024-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getTempleLoad.Request{TempleID: mux.Vars(r)["watId"]}

	var err error
	if req.From, err = optionalDate(r.URL.Query().Get("from")); err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.To, err = optionalDate(r.URL.Query().Get("to")); err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getTempleLoad.ErrInvalidRange):
			h.logger.Warn("GET /wats/{id}/load - Invalid range: wat_id=%s, error=%v", req.TempleID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getTempleLoad.ErrTempleNotFound):
			h.logger.Warn("GET /wats/{id}/load - Wat not found: wat_id=%s", req.TempleID)
			handlers.RespondNotFound(w, msgTempleNotFound)

		case errors.Is(err, getTempleLoad.ErrIdentityUnavailable):
			h.logger.Error("GET /wats/{id}/load - Identity service unavailable: wat_id=%s, error=%v", req.TempleID, err)
			handlers.RespondBadGateway(w, msgIdentityUnavailable)

		default:
			h.logger.Error("GET /wats/{id}/load - Failed to build load: wat_id=%s, error=%v", req.TempleID, err)
			handlers.RespondClassified(w, err, msgLoadFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func optionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(raw)
}
