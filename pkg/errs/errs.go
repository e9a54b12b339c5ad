// Package errs задаёт классы ошибок сервиса поверх cockroachdb/errors.
//
// Класс навешивается на sentinel-ошибку пакета через Mark и переживает
// оборачивание через fmt.Errorf("%w: ...").
package errs

import (
	cr "github.com/cockroachdb/errors"
)

var (
	// ErrNotFound сущность (храм, пользователь, бронирование) не найдена
	ErrNotFound = cr.New("not found")

	// ErrConflict нарушено правило допуска или жизненного цикла
	ErrConflict = cr.New("conflict")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = cr.New("invalid input")

	// ErrUpstreamUnavailable внешний сервис недоступен
	ErrUpstreamUnavailable = cr.New("upstream unavailable")
)

var classes = []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUpstreamUnavailable}

// Mark помечает err классом class
func Mark(err error, class error) error {
	if err == nil {
		return class
	}
	return cr.Mark(err, class)
}

// Is проверяет цепочку ошибок с учётом пометок
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// Class возвращает класс ошибки или nil, если класс не назначен
func Class(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range classes {
		if cr.Is(err, class) {
			return class
		}
	}
	return nil
}

// Wrap добавляет к ошибке сообщение и стек
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}
