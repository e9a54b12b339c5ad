package create_reservation

import (
	"fmt"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/WatReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TempleID        string   `json:"watId"`
	UserID          string   `json:"userId,omitempty"` // по умолчанию берётся из X-User-ID
	ReservationDate string   `json:"reservationDate"`  // "2024-10-10"
	Duration        int      `json:"duration"`
	CremationDate   string   `json:"cremationDate"` // "2024-10-13"
	Addons          []string `json:"addons,omitempty"`
	Price           float64  `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	reservationDate, err := domain.ParseDate(r.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservationDate: %w", err)
	}

	cremationDate, err := domain.ParseDate(r.CremationDate)
	if err != nil {
		return nil, fmt.Errorf("cremationDate: %w", err)
	}

	return &createReservation.Request{
		TempleID:        r.TempleID,
		RequesterID:     r.UserID,
		ReservationDate: reservationDate,
		Duration:        r.Duration,
		CremationDate:   cremationDate,
		Addons:          r.Addons,
		Price:           r.Price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *models.ReservationResponse {
	return models.NewReservationResponse(
		resp.ID, resp.TempleID, resp.RequesterID,
		resp.ReservationDate, resp.Duration, resp.CremationDate,
		resp.Status, resp.Sender,
		resp.Addons, resp.Price,
		resp.CreatedAt, resp.UpdatedAt,
	)
}
