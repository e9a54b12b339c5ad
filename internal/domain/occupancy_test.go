package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WatReservationService/internal/domain"
)

func TestOccupancyIndex_Load(t *testing.T) {
	a := reservation("w1", "2024-10-10", 3, "2024-10-13")
	b := reservation("w1", "2024-10-11", 1, "2024-10-13")
	other := reservation("w2", "2024-10-10", 5, "2024-10-15")

	idx := domain.NewOccupancyIndex("w1", []*domain.Reservation{a, b, other})

	got := idx.Load(domain.DateRange{Start: date("2024-10-09"), End: date("2024-10-14")}, 2)

	want := []domain.DayLoad{
		{Date: date("2024-10-09"), MaxWorkload: 2, FreePlaces: 2, FreeCremationSlots: 2},
		{Date: date("2024-10-10"), Occupied: 1, MaxWorkload: 2, FreePlaces: 1, FreeCremationSlots: 2},
		{Date: date("2024-10-11"), Occupied: 2, MaxWorkload: 2, FreePlaces: 0, FreeCremationSlots: 2},
		{Date: date("2024-10-12"), Occupied: 1, MaxWorkload: 2, FreePlaces: 1, FreeCremationSlots: 2},
		{Date: date("2024-10-13"), Cremations: 2, MaxWorkload: 2, FreePlaces: 2, FreeCremationSlots: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("load mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, got[2].IsFull())
	assert.True(t, got[4].IsCremationFull())
}

func TestOccupancyIndex_Add(t *testing.T) {
	idx := domain.NewOccupancyIndex("w1", nil)
	r := reservation("w1", "2024-10-10", 2, "2024-10-12")

	idx.Add(r)
	require.Equal(t, 1, idx.Occupancy(date("2024-10-10")))
	require.Equal(t, 1, idx.Occupancy(date("2024-10-11")))
	require.Equal(t, 0, idx.Occupancy(date("2024-10-12")))
	require.Equal(t, 1, idx.Cremations(date("2024-10-12")))

	// отклонённая бронь тоже занимает место
	rejected := reservation("w1", "2024-10-11", 1, "2024-10-12")
	rejected.Status = domain.StatusRejected
	idx.Add(rejected)
	assert.Equal(t, 2, idx.Occupancy(date("2024-10-11")))
	assert.Equal(t, 2, idx.Cremations(date("2024-10-12")))

	idx.Add(nil)
	idx.Add(reservation("w2", "2024-10-10", 2, "2024-10-12"))
	assert.Equal(t, 1, idx.Occupancy(date("2024-10-10")))
}

func TestDateRange_Overlaps(t *testing.T) {
	r := domain.DateRange{Start: date("2024-10-10"), End: date("2024-10-13")}

	assert.True(t, r.Overlaps(domain.DateRange{Start: date("2024-10-12"), End: date("2024-10-20")}))
	assert.True(t, r.Overlaps(domain.DateRange{Start: date("2024-10-01"), End: date("2024-10-11")}))
	assert.False(t, r.Overlaps(domain.DateRange{Start: date("2024-10-13"), End: date("2024-10-14")}))
	assert.False(t, r.Overlaps(domain.DateRange{Start: date("2024-10-01"), End: date("2024-10-10")}))
	assert.Len(t, r.Days(), 3)
}
