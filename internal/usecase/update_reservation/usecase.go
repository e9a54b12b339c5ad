package update_reservation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
	"github.com/m04kA/WatReservationService/pkg/errs"
)

// Options настройки жизненного цикла бронирования
type Options struct {
	// StrictTerminal запрещает изменение бронирований в статусах passed и rejected
	StrictTerminal bool
}

// UseCase use case для изменения бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	identityClient  IdentityClient
	notifier        Notifier
	locker          Locker
	txManager       TransactionManager
	strictTerminal  bool
	transitions     domain.TransitionTable
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	identityClient IdentityClient,
	notifier Notifier,
	locker Locker,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		identityClient:  identityClient,
		notifier:        notifier,
		locker:          locker,
		txManager:       txManager,
		strictTerminal:  opts.StrictTerminal,
		transitions:     domain.DefaultTransitions,
		logger:          logger,
	}
}

// Execute применяет изменения к бронированию и рассылает уведомления
// по таблице переходов. Даты и вместимость повторно не проверяются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%s", req.ID)

	// 1. Валидация входных данных
	id, err := parseID(req.ID)
	if err != nil {
		uc.logger.Warn("UpdateReservation: %v", err)
		return nil, err
	}

	patch, err := buildPatch(req)
	if err != nil {
		uc.logger.Warn("UpdateReservation: validation failed for id=%s: %v", id, err)
		return nil, err
	}

	// 2. Получаем бронирование, чтобы узнать храм
	existing, err := uc.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Блокируем храм, изменения не должны пересекаться с проверкой допуска
	unlock, err := uc.locker.Lock(ctx, existing.TempleID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to lock wat=%s: %v", existing.TempleID, err)
		return nil, fmt.Errorf("%w: failed to lock wat: %v", ErrInternal, err)
	}
	defer unlock()

	var previous, updated *domain.Reservation

	// 4. Повторное чтение и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.getReservation(txCtx, id)
		if err != nil {
			return err
		}

		if uc.strictTerminal && current.IsTerminal() {
			uc.logger.Warn("UpdateReservation: id=%s is %s, changes are not allowed", id, current.Status)
			return ErrTerminalStatus
		}

		result, err := uc.reservationRepo.Update(txCtx, id, patch)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		previous, updated = current, result
		return nil
	})
	unlock()

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: id=%s updated, status %s -> %s, sender=%s",
		id, previous.Status, updated.Status, updated.Sender)

	// 5. Уведомления только при смене статуса в запросе
	sent := 0
	if patch.Status != nil {
		sent = uc.notify(ctx, previous.Status, *patch.Status, updated)
	}

	return newResponse(updated, sent), nil
}

func (uc *UseCase) getReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}
	return res, nil
}

// notify рассылает уведомления о переходе from -> to.
// Данные храма и заказчика нужны только для текста, их отсутствие пропускает рассылку.
func (uc *UseCase) notify(ctx context.Context, from, to domain.ReservationStatus, res *domain.Reservation) int {
	plan, ok := uc.transitions.Lookup(from, to, res.Sender)
	if !ok || plan.IsEmpty() {
		uc.logger.Info("UpdateReservation: no notifications for %s -> %s (sender=%s)", from, to, res.Sender)
		return 0
	}

	temple, err := uc.identityClient.GetTemple(ctx, res.TempleID)
	if err != nil {
		uc.logger.Warn("UpdateReservation: skip notifications, failed to get wat=%s: %v", res.TempleID, err)
		return 0
	}

	requester, err := uc.identityClient.GetUser(ctx, res.RequesterID)
	if err != nil {
		uc.logger.Warn("UpdateReservation: skip notifications, failed to get user=%s: %v", res.RequesterID, err)
		return 0
	}

	return uc.notifier.Dispatch(ctx, plan, notifier.Subject{
		Reservation: res,
		Temple:      temple,
		Requester:   requester,
	})
}
