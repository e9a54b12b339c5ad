package identityservice

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrTempleNotFound возвращается, когда храм не найден
	ErrTempleNotFound = errs.Mark(errors.New("identityservice client: wat not found"), errs.ErrNotFound)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errs.Mark(errors.New("identityservice client: user not found"), errs.ErrNotFound)

	// ErrUnavailable возвращается, когда сервис не ответил (сеть, таймаут, 5xx)
	ErrUnavailable = errs.Mark(errors.New("identityservice client: service unavailable"), errs.ErrUpstreamUnavailable)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errs.Mark(errors.New("identityservice client: invalid response"), errs.ErrUpstreamUnavailable)
)
