package get_wat_reservations

import (
	"context"

	"github.com/m04kA/WatReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByTemple(ctx context.Context, req *models.GetTempleReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
