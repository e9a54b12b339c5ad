package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetOverlapping(ctx context.Context, templeID string, window domain.DateRange) ([]*domain.Reservation, error)
	GetByCremationDate(ctx context.Context, templeID string, date time.Time) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetTemple(ctx context.Context, templeID string) (*domain.Temple, error)
	GetUser(ctx context.Context, userID string) (*domain.Person, error)
}

// Notifier интерфейс рассылки уведомлений
type Notifier interface {
	Dispatch(ctx context.Context, plan domain.NotificationPlan, subject notifier.Subject) int
}

// Locker блокировка по ID храма
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики решений допуска
type Metrics interface {
	ObserveAdmission(result, reason string)
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
