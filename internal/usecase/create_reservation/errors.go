package create_reservation

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errs.Mark(errors.New("create_reservation: wat not found"), errs.ErrNotFound)

	// ErrRequesterNotFound возвращается, когда заказчик не найден
	ErrRequesterNotFound = errs.Mark(errors.New("create_reservation: requester not found"), errs.ErrNotFound)

	// ErrPastDate возвращается, когда дата брони раньше текущей даты
	ErrPastDate = errs.Mark(errors.New("create_reservation: reservation date is in the past"), errs.ErrConflict)

	// ErrInvalidCremationWindow возвращается, когда дата кремации раньше или внутри окна занятости
	ErrInvalidCremationWindow = errs.Mark(errors.New("create_reservation: cremation date must be on or after the end of the reservation"), errs.ErrConflict)

	// ErrCapacityExceededOccupancy возвращается, когда храм заполнен на пересекающиеся даты
	ErrCapacityExceededOccupancy = errs.Mark(errors.New("create_reservation: wat is fully booked for these dates"), errs.ErrConflict)

	// ErrCapacityExceededCremation возвращается, когда исчерпан лимит кремаций на дату
	ErrCapacityExceededCremation = errs.Mark(errors.New("create_reservation: no cremation slots left on this date"), errs.ErrConflict)

	// ErrConcurrentModification возвращается, когда параллельная транзакция изменила загрузку храма
	ErrConcurrentModification = errs.Mark(errors.New("create_reservation: concurrent reservation, retry"), errs.ErrConflict)

	// ErrIdentityUnavailable возвращается, когда сервис идентификации недоступен
	ErrIdentityUnavailable = errs.Mark(errors.New("create_reservation: identity service unavailable"), errs.ErrUpstreamUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errs.Mark(errors.New("create_reservation: invalid input data"), errs.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
