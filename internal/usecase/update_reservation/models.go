package update_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// Request модель запроса на изменение бронирования.
// nil означает, что поле не меняется.
type Request struct {
	ID              string
	Status          *string
	Sender          *string
	ReservationDate *time.Time
	Duration        *int
	CremationDate   *time.Time
	Addons          *[]string
	Price           *float64
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID              uuid.UUID
	TempleID        string
	RequesterID     string
	ReservationDate time.Time
	Duration        int
	CremationDate   time.Time
	Status          string
	Sender          string
	Addons          []string
	Price           float64

	// NotificationsSent число отправленных уведомлений
	NotificationsSent int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(r *domain.Reservation, sent int) *Response {
	return &Response{
		ID:                r.ID,
		TempleID:          r.TempleID,
		RequesterID:       r.RequesterID,
		ReservationDate:   r.ReservationDate,
		Duration:          r.Duration,
		CremationDate:     r.CremationDate,
		Status:            string(r.Status),
		Sender:            string(r.Sender),
		Addons:            r.Addons,
		Price:             r.Price,
		NotificationsSent: sent,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
