package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	// StatusNone is the "from" status of a reservation that does not exist yet
	StatusNone     ReservationStatus = ""
	StatusPending  ReservationStatus = "pending"
	StatusAccepted ReservationStatus = "accepted"
	StatusPassed   ReservationStatus = "passed"
	StatusRejected ReservationStatus = "rejected"

	// StatusAny matches every status in a transition table row
	StatusAny ReservationStatus = "*"
)

// IsValid reports whether s is one of the four stored statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPassed, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is expected from s
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusPassed || s == StatusRejected
}

// ParseStatus converts raw input into a stored status
func ParseStatus(raw string) (ReservationStatus, bool) {
	s := ReservationStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.IsValid()
}

// Sender records who initiated the most recent status-changing action
type Sender string

const (
	SenderRequester Sender = "requester"
	SenderTemple    Sender = "temple"

	// SenderAny matches every sender in a transition table row
	SenderAny Sender = "*"
)

// IsValid reports whether s is a concrete sender
func (s Sender) IsValid() bool {
	return s == SenderRequester || s == SenderTemple
}

// ParseSender accepts both the canonical values and the legacy "user"/"wat" aliases
func ParseSender(raw string) (Sender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "requester", "user":
		return SenderRequester, true
	case "temple", "wat":
		return SenderTemple, true
	}
	return "", false
}

// Reservation represents a cremation-service booking at a temple
type Reservation struct {
	ID              uuid.UUID
	TempleID        string
	RequesterID     string
	ReservationDate time.Time // first day of the occupancy window, UTC midnight
	Duration        int       // days
	CremationDate   time.Time // UTC midnight
	Status          ReservationStatus
	Sender          Sender
	Addons          []string
	Price           float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndDate returns the exclusive end of the occupancy window
func (r *Reservation) EndDate() time.Time {
	return r.ReservationDate.AddDate(0, 0, r.Duration)
}

// Window returns the occupancy window [reservation_date, reservation_date + duration)
func (r *Reservation) Window() DateRange {
	return DateRange{Start: r.ReservationDate, End: r.EndDate()}
}

// IsTerminal returns true if the reservation is passed or rejected
func (r *Reservation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// Clone returns a deep copy of the reservation
func (r *Reservation) Clone() *Reservation {
	c := *r
	if r.Addons != nil {
		c.Addons = append([]string(nil), r.Addons...)
	}
	return &c
}

// ReservationPatch holds the fields of an update; nil means "leave unchanged"
type ReservationPatch struct {
	Status          *ReservationStatus
	Sender          *Sender
	ReservationDate *time.Time
	Duration        *int
	CremationDate   *time.Time
	Addons          *[]string
	Price           *float64
}

// IsEmpty returns true if the patch changes nothing
func (p *ReservationPatch) IsEmpty() bool {
	return p.Status == nil &&
		p.Sender == nil &&
		p.ReservationDate == nil &&
		p.Duration == nil &&
		p.CremationDate == nil &&
		p.Addons == nil &&
		p.Price == nil
}

// Apply writes the non-nil patch fields into r
func (p *ReservationPatch) Apply(r *Reservation) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Sender != nil {
		r.Sender = *p.Sender
	}
	if p.ReservationDate != nil {
		r.ReservationDate = DateOnly(*p.ReservationDate)
	}
	if p.Duration != nil {
		r.Duration = *p.Duration
	}
	if p.CremationDate != nil {
		r.CremationDate = DateOnly(*p.CremationDate)
	}
	if p.Addons != nil {
		r.Addons = append([]string(nil), (*p.Addons)...)
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
}

// Temple is the read-only view of a temple needed by the engine
type Temple struct {
	ID          string
	Name        string
	Phone       string
	MaxWorkload int
}

// Person is the read-only view of a requester
type Person struct {
	ID        string
	Firstname string
	Lastname  string
	Phone     string
}

// FullName returns "Firstname Lastname" without stray spaces
func (p *Person) FullName() string {
	return strings.TrimSpace(p.Firstname + " " + p.Lastname)
}
