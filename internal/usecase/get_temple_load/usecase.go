package get_temple_load

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/pkg/errs"
)

// UseCase use case для расчёта загрузки храма по датам
type UseCase struct {
	reservationRepo ReservationRepository
	identityClient  IdentityClient
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	identityClient IdentityClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		identityClient:  identityClient,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает занятость и число кремаций на каждую дату диапазона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	templeID := strings.TrimSpace(req.TempleID)
	if templeID == "" {
		return nil, fmt.Errorf("%w: watId is required", ErrInvalidRange)
	}

	from, to, err := uc.resolveRange(req)
	if err != nil {
		uc.logger.Warn("GetTempleLoad: wat=%s: %v", templeID, err)
		return nil, err
	}

	uc.logger.Info("GetTempleLoad: wat=%s, from=%s, to=%s",
		templeID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	temple, err := uc.identityClient.GetTemple(ctx, templeID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrNotFound):
			uc.logger.Warn("GetTempleLoad: wat=%s not found", templeID)
			return nil, ErrTempleNotFound
		case errs.Is(err, errs.ErrUpstreamUnavailable):
			uc.logger.Error("GetTempleLoad: identity service unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
		}
		uc.logger.Error("GetTempleLoad: failed to get wat=%s: %v", templeID, err)
		return nil, fmt.Errorf("%w: failed to get wat: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetByTemple(ctx, templeID)
	if err != nil {
		uc.logger.Error("GetTempleLoad: failed to get reservations for wat=%s: %v", templeID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}

	index := domain.NewOccupancyIndex(templeID, reservations)
	loads := index.Load(domain.DateRange{Start: from, End: to.AddDate(0, 0, 1)}, temple.MaxWorkload)

	days := make([]DayLoad, 0, len(loads))
	for _, l := range loads {
		days = append(days, DayLoad{
			Date:               l.Date,
			Occupied:           l.Occupied,
			Cremations:         l.Cremations,
			FreePlaces:         l.FreePlaces,
			FreeCremationSlots: l.FreeCremationSlots,
		})
	}

	return &Response{
		TempleID:    templeID,
		TempleName:  temple.Name,
		MaxWorkload: temple.MaxWorkload,
		From:        from,
		To:          to,
		Days:        days,
	}, nil
}

// resolveRange подставляет значения по умолчанию и проверяет диапазон
func (uc *UseCase) resolveRange(req *Request) (time.Time, time.Time, error) {
	from := domain.DateOnly(req.From)
	if req.From.IsZero() {
		from = domain.DateOnly(uc.timeProvider.Now().In(uc.location))
	}

	to := domain.DateOnly(req.To)
	if req.To.IsZero() {
		to = from.AddDate(0, 0, domain.DefaultLoadRangeDays)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must not be after to", ErrInvalidRange)
	}
	if to.After(from.AddDate(0, 0, domain.MaxLoadRangeDays)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range is longer than %d days", ErrInvalidRange, domain.MaxLoadRangeDays)
	}

	return from, to, nil
}
