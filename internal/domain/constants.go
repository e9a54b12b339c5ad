package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinDuration     = 1
	MaxDuration     = 365
	MaxAddons       = 50
	MaxAddonLength  = 100
	MaxIDLength     = 128
	DefaultTimezone = "UTC"
)

// Temple load read model
const (
	DefaultLoadRangeDays = 30
	MaxLoadRangeDays     = 366
)

// CapacityStatuses statuses that consume temple capacity
// Используется для фильтрации при подсчёте загрузки
var CapacityStatuses = []ReservationStatus{
	StatusPending,
	StatusAccepted,
	StatusPassed,
}
