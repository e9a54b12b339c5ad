package get_temple_load

import (
	"context"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByTemple(ctx context.Context, templeID string) ([]*domain.Reservation, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetTemple(ctx context.Context, templeID string) (*domain.Temple, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
