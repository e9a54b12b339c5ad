package reservations

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/service/reservations/models"
	"github.com/m04kA/WatReservationService/pkg/errs"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, rawID string) (*models.ReservationResponse, error) {
	id, err := parseID(rawID)
	if err != nil {
		s.logger.Warn("GetByID: %v", err)
		return nil, err
	}

	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetByTemple получает бронирования храма.
// Опционально фильтрует по статусу. Пустой результат считается конфликтом.
func (s *Service) GetByTemple(ctx context.Context, req *models.GetTempleReservationsRequest) (*models.ReservationListResponse, error) {
	templeID := strings.TrimSpace(req.TempleID)
	if templeID == "" {
		return nil, fmt.Errorf("%w: watId is required", ErrInvalidInput)
	}

	s.logger.Info("GetByTemple: fetching reservations for wat=%s, status=%v", templeID, req.Status)

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, ok := domain.ParseStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetByTemple: invalid status=%s for wat=%s", *req.Status, templeID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	list, err := s.reservationRepo.GetByTemple(ctx, templeID)
	if err != nil {
		s.logger.Error("GetByTemple: repository error for wat=%s: %v", templeID, err)
		return nil, fmt.Errorf("%w: GetByTemple - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := list[:0]
		for _, r := range list {
			if r.Status == *status {
				filtered = append(filtered, r)
			}
		}
		list = filtered
	}

	if len(list) == 0 {
		s.logger.Warn("GetByTemple: no reservations for wat=%s", templeID)
		return nil, ErrNoReservations
	}

	s.logger.Info("GetByTemple: found %d reservations for wat=%s", len(list), templeID)
	return models.FromDomainReservations(list), nil
}

// Delete удаляет бронирование без уведомлений
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		s.logger.Warn("Delete: %v", err)
		return err
	}

	s.logger.Info("Delete: deleting reservation id=%s", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%s deleted", id)
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid reservation id %q", ErrInvalidInput, raw)
	}
	return id, nil
}
