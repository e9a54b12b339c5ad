package reservation

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errs.Mark(errors.New("reservation.repository: reservation not found"), errs.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrEmptyPatch возвращается при попытке обновить бронирование пустым набором полей
	ErrEmptyPatch = errors.New("reservation.repository: empty patch")
)
