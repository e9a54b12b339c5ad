package update_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error)
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
