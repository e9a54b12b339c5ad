package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
	"github.com/m04kA/WatReservationService/pkg/errs"
	"github.com/m04kA/WatReservationService/pkg/txmanager"
)

const (
	admissionAccepted = "accepted"
	admissionRejected = "rejected"
)

// Options настройки правил допуска
type Options struct {
	Policy   domain.AdmissionPolicy
	Location *time.Location // часовой пояс, в котором определяется "сегодня"
}

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	identityClient  IdentityClient
	notifier        Notifier
	locker          Locker
	txManager       TransactionManager
	metrics         Metrics
	policy          domain.AdmissionPolicy
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	identityClient IdentityClient,
	notifier Notifier,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		identityClient:  identityClient,
		notifier:        notifier,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		policy:          opts.Policy,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка допуска и запись выполняются под блокировкой храма
// в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: wat=%s, user=%s, date=%s, duration=%d, cremation=%s",
		req.TempleID, req.RequesterID, req.ReservationDate.Format(domain.DateFormat), req.Duration,
		req.CremationDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	templeID := strings.TrimSpace(req.TempleID)
	requesterID := strings.TrimSpace(req.RequesterID)
	candidate := domain.Candidate{
		TempleID:        templeID,
		ReservationDate: domain.DateOnly(req.ReservationDate),
		Duration:        req.Duration,
		CremationDate:   domain.DateOnly(req.CremationDate),
	}

	// 2. Текущая дата в часовом поясе сервиса
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.location))

	// 3. Получаем храм
	temple, err := uc.identityClient.GetTemple(ctx, templeID)
	if err != nil {
		return nil, uc.identityError("wat", templeID, err, ErrTempleNotFound)
	}

	// 4. Получаем заказчика
	requester, err := uc.identityClient.GetUser(ctx, requesterID)
	if err != nil {
		return nil, uc.identityError("user", requesterID, err, ErrRequesterNotFound)
	}

	// 5. Блокируем храм на время проверки и записи
	unlock, err := uc.locker.Lock(ctx, templeID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to lock wat=%s: %v", templeID, err)
		return nil, fmt.Errorf("%w: failed to lock wat: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Reservation

	// 6. Проверка допуска и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.reservationRepo.GetOverlapping(txCtx, templeID, candidate.Window())
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to get overlapping reservations: %w", ErrInternal, err)
		}

		sameCremation, err := uc.reservationRepo.GetByCremationDate(txCtx, templeID, candidate.CremationDate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations by cremation date: %v", err)
			return fmt.Errorf("%w: failed to get reservations by cremation date: %w", ErrInternal, err)
		}

		decision := domain.Decide(candidate, mergeReservations(overlapping, sameCremation), temple.MaxWorkload, today, uc.policy)
		if !decision.Accepted {
			uc.logger.Warn("CreateReservation: rejected wat=%s reason=%s (occupancy %d/%d, cremations %d/%d)",
				templeID, decision.Reason,
				decision.OverlappingCount, decision.MaxWorkload,
				decision.SameDayCremationCount, decision.MaxWorkload)
			uc.metrics.ObserveAdmission(admissionRejected, string(decision.Reason))
			return reasonError(decision.Reason)
		}

		uc.logger.Info("CreateReservation: admitted wat=%s (occupancy %d/%d, cremations %d/%d)",
			templeID, decision.OverlappingCount, decision.MaxWorkload,
			decision.SameDayCremationCount, decision.MaxWorkload)

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			TempleID:        templeID,
			RequesterID:     requesterID,
			ReservationDate: candidate.ReservationDate,
			Duration:        candidate.Duration,
			CremationDate:   candidate.CremationDate,
			Status:          domain.StatusPending,
			Sender:          domain.SenderRequester,
			Addons:          normalizeAddons(req.Addons),
			Price:           req.Price,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	unlock()

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: concurrent modification for wat=%s: %v", templeID, err)
			uc.metrics.ObserveAdmission(admissionRejected, "concurrent_modification")
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	uc.metrics.ObserveAdmission(admissionAccepted, "")
	uc.logger.Info("CreateReservation: successfully created reservation id=%s", result.ID)

	// 7. Уведомления после фиксации транзакции, ошибки не откатывают бронирование
	plan, ok := domain.DefaultTransitions.Lookup(domain.StatusNone, domain.StatusPending, domain.SenderRequester)
	if ok {
		uc.notifier.Dispatch(ctx, plan, notifier.Subject{
			Reservation: result,
			Temple:      temple,
			Requester:   requester,
		})
	}

	return newResponse(result), nil
}

// identityError переводит ошибку сервиса идентификации в ошибку usecase
func (uc *UseCase) identityError(kind, id string, err error, notFound error) error {
	switch {
	case errs.Is(err, errs.ErrNotFound):
		uc.logger.Warn("CreateReservation: %s id=%s not found", kind, id)
		return notFound
	case errs.Is(err, errs.ErrUpstreamUnavailable):
		uc.logger.Error("CreateReservation: identity service unavailable for %s id=%s: %v", kind, id, err)
		return fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	default:
		uc.logger.Error("CreateReservation: failed to get %s id=%s: %v", kind, id, err)
		return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, kind, err)
	}
}
