package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TempleID        string    // ID храма
	RequesterID     string    // ID заказчика
	ReservationDate time.Time // Первый день окна занятости
	Duration        int       // Длительность в днях
	CremationDate   time.Time // Дата кремации
	Addons          []string  // Дополнительные услуги
	Price           float64   // Стоимость
}

// Response модель ответа с созданным бронированием
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

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		TempleID:        r.TempleID,
		RequesterID:     r.RequesterID,
		ReservationDate: r.ReservationDate,
		Duration:        r.Duration,
		CremationDate:   r.CremationDate,
		Status:          string(r.Status),
		Sender:          string(r.Sender),
		Addons:          r.Addons,
		Price:           r.Price,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
