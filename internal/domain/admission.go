package domain

import "time"

// RejectReason explains why a candidate reservation was not admitted
type RejectReason string

const (
	ReasonNone                   RejectReason = ""
	ReasonPastDate               RejectReason = "past_date"
	ReasonInvalidCremationWindow RejectReason = "invalid_cremation_window"
	ReasonCapacityOccupancy      RejectReason = "capacity_exceeded_occupancy"
	ReasonCapacityCremation      RejectReason = "capacity_exceeded_cremation"
)

// Candidate is a reservation that has not been admitted yet
type Candidate struct {
	TempleID        string
	ReservationDate time.Time
	Duration        int
	CremationDate   time.Time
}

// EndDate returns the exclusive end of the candidate's occupancy window
func (c Candidate) EndDate() time.Time {
	return c.ReservationDate.AddDate(0, 0, c.Duration)
}

// Window returns the candidate's occupancy window
func (c Candidate) Window() DateRange {
	return DateRange{Start: c.ReservationDate, End: c.EndDate()}
}

// AdmissionPolicy holds the configurable parts of the admission rules
type AdmissionPolicy struct {
	// AllowSameDayCremation lets cremation_date equal reservation_date
	AllowSameDayCremation bool
}

// Decision is the outcome of Decide
type Decision struct {
	Accepted              bool
	Reason                RejectReason
	OverlappingCount      int
	SameDayCremationCount int
	MaxWorkload           int
}

// Decide runs the ordered admission rules for a candidate against the
// temple's current reservations. It is a pure function: today is supplied
// by the caller and nothing is mutated.
//
// Rules, first match wins:
//  1. reservation_date before today -> past_date
//  2. cremation_date before reservation_date or inside the occupancy window -> invalid_cremation_window
//  3. overlapping reservations >= max_workload -> capacity_exceeded_occupancy
//  4. reservations with the same cremation_date >= max_workload -> capacity_exceeded_cremation
//
// Every stored reservation of the temple counts regardless of its status:
// updates do not re-run admission, so a rejected reservation may become
// accepted again. Reservations of other temples are ignored.
func Decide(c Candidate, existing []*Reservation, maxWorkload int, today time.Time, policy AdmissionPolicy) Decision {
	d := Decision{MaxWorkload: maxWorkload}

	if c.ReservationDate.Before(today) {
		d.Reason = ReasonPastDate
		return d
	}

	if !cremationWindowValid(c, policy) {
		d.Reason = ReasonInvalidCremationWindow
		return d
	}

	window := c.Window()
	for _, r := range existing {
		if r == nil || r.TempleID != c.TempleID {
			continue
		}
		if r.Window().Overlaps(window) {
			d.OverlappingCount++
		}
		if r.CremationDate.Equal(c.CremationDate) {
			d.SameDayCremationCount++
		}
	}

	if d.OverlappingCount >= maxWorkload {
		d.Reason = ReasonCapacityOccupancy
		return d
	}
	if d.SameDayCremationCount >= maxWorkload {
		d.Reason = ReasonCapacityCremation
		return d
	}

	d.Accepted = true
	return d
}

func cremationWindowValid(c Candidate, policy AdmissionPolicy) bool {
	if c.CremationDate.Before(c.ReservationDate) {
		return false
	}
	if policy.AllowSameDayCremation && c.CremationDate.Equal(c.ReservationDate) {
		return true
	}
	return !c.Window().Contains(c.CremationDate)
}
