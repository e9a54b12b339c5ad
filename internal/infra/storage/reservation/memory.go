package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// MemoryRepository хранилище бронирований в памяти процесса.
// Используется при storage.driver = "memory" и в тестах.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*domain.Reservation
	now   func() time.Time
}

// NewMemoryRepository создает пустое хранилище в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[uuid.UUID]*domain.Reservation),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.Addons == nil {
		res.Addons = []string{}
	}
	now := m.now()
	res.CreatedAt = now
	res.UpdatedAt = now

	m.items[res.ID] = res.Clone()
	return res, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return res.Clone(), nil
}

func (m *MemoryRepository) GetByTemple(ctx context.Context, templeID string) ([]*domain.Reservation, error) {
	return m.filter(func(r *domain.Reservation) bool {
		return r.TempleID == templeID
	}), nil
}

func (m *MemoryRepository) GetOverlapping(ctx context.Context, templeID string, window domain.DateRange) ([]*domain.Reservation, error) {
	return m.filter(func(r *domain.Reservation) bool {
		return r.TempleID == templeID && r.Window().Overlaps(window)
	}), nil
}

func (m *MemoryRepository) GetByCremationDate(ctx context.Context, templeID string, date time.Time) ([]*domain.Reservation, error) {
	return m.filter(func(r *domain.Reservation) bool {
		return r.TempleID == templeID && r.CremationDate.Equal(date)
	}), nil
}

func (m *MemoryRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}

	patch.Apply(res)
	res.UpdatedAt = m.now()
	return res.Clone(), nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrReservationNotFound
	}
	delete(m.items, id)
	return nil
}

// filter возвращает копии подходящих бронирований в порядке даты начала
func (m *MemoryRepository) filter(match func(r *domain.Reservation) bool) []*domain.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range m.items {
		if match(r) {
			result = append(result, r.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ReservationDate.Equal(result[j].ReservationDate) {
			return result[i].ReservationDate.Before(result[j].ReservationDate)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
