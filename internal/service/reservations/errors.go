package reservations

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errs.Mark(errors.New("reservations: reservation not found"), errs.ErrNotFound)

	// ErrNoReservations возвращается, когда у храма нет ни одного бронирования
	ErrNoReservations = errs.Mark(errors.New("reservations: wat has no reservations"), errs.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errs.Mark(errors.New("reservations: invalid input data"), errs.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
