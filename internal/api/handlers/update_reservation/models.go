package update_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/WatReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model, все поля опциональны
type UpdateReservationRequest struct {
	Status          *string   `json:"status,omitempty"`
	Sender          *string   `json:"sender,omitempty"` // "user" | "wat"
	ReservationDate *string   `json:"reservationDate,omitempty"`
	Duration        *int      `json:"duration,omitempty"`
	CremationDate   *string   `json:"cremationDate,omitempty"`
	Addons          *[]string `json:"addons,omitempty"`
	Price           *float64  `json:"price,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(id string) (*updateReservation.Request, error) {
	reservationDate, err := parseOptionalDate(r.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservationDate: %w", err)
	}

	cremationDate, err := parseOptionalDate(r.CremationDate)
	if err != nil {
		return nil, fmt.Errorf("cremationDate: %w", err)
	}

	return &updateReservation.Request{
		ID:              id,
		Status:          r.Status,
		Sender:          r.Sender,
		ReservationDate: reservationDate,
		Duration:        r.Duration,
		CremationDate:   cremationDate,
		Addons:          r.Addons,
		Price:           r.Price,
	}, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := domain.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *models.ReservationResponse {
	return models.NewReservationResponse(
		resp.ID, resp.TempleID, resp.RequesterID,
		resp.ReservationDate, resp.Duration, resp.CremationDate,
		resp.Status, resp.Sender,
		resp.Addons, resp.Price,
		resp.CreatedAt, resp.UpdatedAt,
	)
}
