package update_reservation

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errs.Mark(errors.New("update_reservation: reservation not found"), errs.ErrNotFound)

	// ErrTerminalStatus возвращается при изменении завершённого или отменённого бронирования
	ErrTerminalStatus = errs.Mark(errors.New("update_reservation: reservation is in a terminal status"), errs.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errs.Mark(errors.New("update_reservation: invalid input data"), errs.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
