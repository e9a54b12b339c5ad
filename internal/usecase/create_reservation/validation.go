package create_reservation

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validateID("watId", req.TempleID); err != nil {
		return err
	}

	if err := validateID("userId", req.RequesterID); err != nil {
		return err
	}

	if req.ReservationDate.IsZero() {
		return fmt.Errorf("%w: reservationDate is required", ErrInvalidInput)
	}

	if req.CremationDate.IsZero() {
		return fmt.Errorf("%w: cremationDate is required", ErrInvalidInput)
	}

	if req.Duration < domain.MinDuration || req.Duration > domain.MaxDuration {
		return fmt.Errorf("%w: duration must be between %d and %d days", ErrInvalidInput, domain.MinDuration, domain.MaxDuration)
	}

	if req.Price < 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidInput)
	}

	if len(req.Addons) > domain.MaxAddons {
		return fmt.Errorf("%w: at most %d addons allowed", ErrInvalidInput, domain.MaxAddons)
	}

	for _, addon := range req.Addons {
		if len(addon) > domain.MaxAddonLength {
			return fmt.Errorf("%w: addon is longer than %d characters", ErrInvalidInput, domain.MaxAddonLength)
		}
	}

	return nil
}

func validateID(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len(value) > domain.MaxIDLength {
		return fmt.Errorf("%w: %s is too long", ErrInvalidInput, field)
	}
	return nil
}

// normalizeAddons убирает пустые и повторяющиеся метки, сохраняя порядок
func normalizeAddons(addons []string) []string {
	result := make([]string, 0, len(addons))
	seen := make(map[string]struct{}, len(addons))
	for _, addon := range addons {
		addon = strings.TrimSpace(addon)
		if addon == "" {
			continue
		}
		if _, ok := seen[addon]; ok {
			continue
		}
		seen[addon] = struct{}{}
		result = append(result, addon)
	}
	return result
}

// mergeReservations объединяет выборки без дубликатов по ID
func mergeReservations(lists ...[]*domain.Reservation) []*domain.Reservation {
	var result []*domain.Reservation
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, r := range list {
			key := r.ID.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, r)
		}
	}
	return result
}

// reasonError сопоставляет причину отказа с ошибкой usecase
func reasonError(reason domain.RejectReason) error {
	switch reason {
	case domain.ReasonPastDate:
		return ErrPastDate
	case domain.ReasonInvalidCremationWindow:
		return ErrInvalidCremationWindow
	case domain.ReasonCapacityOccupancy:
		return ErrCapacityExceededOccupancy
	case domain.ReasonCapacityCremation:
		return ErrCapacityExceededCremation
	}
	return fmt.Errorf("%w: unknown reject reason %q", ErrInternal, reason)
}
