package notifier

import (
	"context"

	"github.com/m04kA/WatReservationService/internal/domain"
)

const (
	outcomeSent    = "sent"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

// Service рассылает уведомления сторонам бронирования по плану из таблицы переходов.
// Ошибки доставки логируются и не возвращаются вызывающему.
type Service struct {
	gateway Gateway
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(gateway Gateway, metrics Metrics, logger Logger) *Service {
	return &Service{
		gateway: gateway,
		metrics: metrics,
		logger:  logger,
	}
}

// Dispatch отправляет уведомления заказчику и храму согласно plan.
// Возвращает число успешно отправленных уведомлений.
func (s *Service) Dispatch(ctx context.Context, plan domain.NotificationPlan, subject Subject) int {
	if subject.Reservation == nil || plan.IsEmpty() {
		return 0
	}

	sent := 0
	if s.send(ctx, plan.Requester, subject.Reservation.RequesterID, subject) {
		sent++
	}
	if s.send(ctx, plan.Temple, subject.Reservation.TempleID, subject) {
		sent++
	}
	return sent
}

func (s *Service) send(ctx context.Context, kind domain.NotificationKind, recipientID string, subject Subject) bool {
	if kind == domain.NotifyNone {
		return false
	}

	title, description, ok := render(kind, subject)
	if !ok {
		s.logger.Warn("Dispatch: no template for notification kind=%s", kind)
		s.metrics.ObserveNotification(string(kind), outcomeSkipped)
		return false
	}

	if err := s.gateway.Send(ctx, title, description, recipientID); err != nil {
		s.logger.Error("Dispatch: failed to send %s to recipient=%s for reservation=%s: %v",
			kind, recipientID, subject.Reservation.ID, err)
		s.metrics.ObserveNotification(string(kind), outcomeFailed)
		return false
	}

	s.logger.Info("Dispatch: sent %s to recipient=%s for reservation=%s", kind, recipientID, subject.Reservation.ID)
	s.metrics.ObserveNotification(string(kind), outcomeSent)
	return true
}
