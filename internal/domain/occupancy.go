package domain

import "time"

// DayLoad represents the load of a temple on one calendar date
type DayLoad struct {
	Date               time.Time
	Occupied           int // reservations whose occupancy window covers the date
	Cremations         int // reservations cremated on the date
	MaxWorkload        int
	FreePlaces         int
	FreeCremationSlots int
}

// IsFull returns true if no further occupancy fits on this date
func (d *DayLoad) IsFull() bool {
	return d.FreePlaces <= 0
}

// IsCremationFull returns true if no further cremation fits on this date
func (d *DayLoad) IsCremationFull() bool {
	return d.FreeCremationSlots <= 0
}

// OccupancyIndex keeps per-date counters for a single temple.
// Not safe for concurrent use; callers serialize access per temple.
type OccupancyIndex struct {
	templeID   string
	occupancy  map[time.Time]int
	cremations map[time.Time]int
}

// NewOccupancyIndex builds the index from a temple's reservations
func NewOccupancyIndex(templeID string, reservations []*Reservation) *OccupancyIndex {
	idx := &OccupancyIndex{
		templeID:   templeID,
		occupancy:  make(map[time.Time]int),
		cremations: make(map[time.Time]int),
	}
	for _, r := range reservations {
		idx.Add(r)
	}
	return idx
}

// Add accounts a reservation of any status; other temples are ignored
func (idx *OccupancyIndex) Add(r *Reservation) {
	if r == nil || r.TempleID != idx.templeID {
		return
	}
	for _, day := range r.Window().Days() {
		idx.occupancy[DateOnly(day)]++
	}
	idx.cremations[DateOnly(r.CremationDate)]++
}

// Occupancy returns how many reservations occupy the date
func (idx *OccupancyIndex) Occupancy(date time.Time) int {
	return idx.occupancy[DateOnly(date)]
}

// Cremations returns how many cremations are scheduled on the date
func (idx *OccupancyIndex) Cremations(date time.Time) int {
	return idx.cremations[DateOnly(date)]
}

// Load returns one DayLoad per date of the range
func (idx *OccupancyIndex) Load(r DateRange, maxWorkload int) []DayLoad {
	days := r.Days()
	result := make([]DayLoad, 0, len(days))
	for _, day := range days {
		day = DateOnly(day)
		occupied := idx.occupancy[day]
		cremations := idx.cremations[day]
		result = append(result, DayLoad{
			Date:               day,
			Occupied:           occupied,
			Cremations:         cremations,
			MaxWorkload:        maxWorkload,
			FreePlaces:         max(maxWorkload-occupied, 0),
			FreeCremationSlots: max(maxWorkload-cremations, 0),
		})
	}
	return result
}
