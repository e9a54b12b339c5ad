package update_reservation

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// parseID разбирает идентификатор бронирования
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid reservation id %q", ErrInvalidInput, raw)
	}
	return id, nil
}

// buildPatch проверяет запрос и собирает набор изменений
func buildPatch(req *Request) (domain.ReservationPatch, error) {
	var patch domain.ReservationPatch

	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return patch, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		patch.Status = &status
	}

	if req.Sender != nil {
		sender, ok := domain.ParseSender(*req.Sender)
		if !ok {
			return patch, fmt.Errorf("%w: unknown sender %q", ErrInvalidInput, *req.Sender)
		}
		patch.Sender = &sender
	}

	if req.ReservationDate != nil {
		if req.ReservationDate.IsZero() {
			return patch, fmt.Errorf("%w: reservationDate is empty", ErrInvalidInput)
		}
		patch.ReservationDate = req.ReservationDate
	}

	if req.CremationDate != nil {
		if req.CremationDate.IsZero() {
			return patch, fmt.Errorf("%w: cremationDate is empty", ErrInvalidInput)
		}
		patch.CremationDate = req.CremationDate
	}

	if req.Duration != nil {
		if *req.Duration < domain.MinDuration || *req.Duration > domain.MaxDuration {
			return patch, fmt.Errorf("%w: duration must be between %d and %d days", ErrInvalidInput, domain.MinDuration, domain.MaxDuration)
		}
		patch.Duration = req.Duration
	}

	if req.Price != nil {
		p := *req.Price
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return patch, fmt.Errorf("%w: price must be a non-negative number", ErrInvalidInput)
		}
		patch.Price = req.Price
	}

	if req.Addons != nil {
		addons, err := normalizeAddons(*req.Addons)
		if err != nil {
			return patch, err
		}
		patch.Addons = &addons
	}

	if patch.IsEmpty() {
		return patch, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return patch, nil
}

func normalizeAddons(addons []string) ([]string, error) {
	if len(addons) > domain.MaxAddons {
		return nil, fmt.Errorf("%w: at most %d addons allowed", ErrInvalidInput, domain.MaxAddons)
	}

	result := make([]string, 0, len(addons))
	seen := make(map[string]struct{}, len(addons))
	for _, addon := range addons {
		addon = strings.TrimSpace(addon)
		if addon == "" {
			continue
		}
		if len(addon) > domain.MaxAddonLength {
			return nil, fmt.Errorf("%w: addon is longer than %d characters", ErrInvalidInput, domain.MaxAddonLength)
		}
		if _, ok := seen[addon]; ok {
			continue
		}
		seen[addon] = struct{}{}
		result = append(result, addon)
	}
	return result, nil
}
