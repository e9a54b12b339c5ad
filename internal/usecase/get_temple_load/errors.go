package get_temple_load

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errs.Mark(errors.New("get_temple_load: wat not found"), errs.ErrNotFound)

	// ErrIdentityUnavailable возвращается, когда сервис идентификации недоступен
	ErrIdentityUnavailable = errs.Mark(errors.New("get_temple_load: identity service unavailable"), errs.ErrUpstreamUnavailable)

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errs.Mark(errors.New("get_temple_load: invalid date range"), errs.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_temple_load: internal error")
)
