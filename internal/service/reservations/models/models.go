package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// Request модели

// GetTempleReservationsRequest запрос на получение бронирований храма
type GetTempleReservationsRequest struct {
	TempleID string  `json:"watId"`
	Status   *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              string    `json:"id"`
	TempleID        string    `json:"watId"`
	RequesterID     string    `json:"userId"`
	ReservationDate string    `json:"reservationDate"` // "2024-10-10"
	Duration        int       `json:"duration"`        // дней
	CremationDate   string    `json:"cremationDate"`   // "2024-10-13"
	Status          string    `json:"status"`
	Sender          string    `json:"sender"`
	Addons          []string  `json:"addons"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// NewReservationResponse собирает ответ из плоских полей бронирования.
// Используется usecase-ответами, у которых нет domain.Reservation.
func NewReservationResponse(
	id uuid.UUID,
	templeID, requesterID string,
	reservationDate time.Time,
	duration int,
	cremationDate time.Time,
	status, sender string,
	addons []string,
	price float64,
	createdAt, updatedAt time.Time,
) *ReservationResponse {
	if addons == nil {
		addons = []string{}
	}
	return &ReservationResponse{
		ID:              id.String(),
		TempleID:        templeID,
		RequesterID:     requesterID,
		ReservationDate: reservationDate.Format(domain.DateFormat),
		Duration:        duration,
		CremationDate:   cremationDate.Format(domain.DateFormat),
		Status:          status,
		Sender:          sender,
		Addons:          addons,
		Price:           price,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return NewReservationResponse(
		r.ID, r.TempleID, r.RequesterID,
		r.ReservationDate, r.Duration, r.CremationDate,
		string(r.Status), string(r.Sender),
		r.Addons, r.Price,
		r.CreatedAt, r.UpdatedAt,
	)
}

// FromDomainReservations конвертирует список бронирований
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		result.Reservations = append(result.Reservations, *FromDomainReservation(r))
	}
	return result
}
