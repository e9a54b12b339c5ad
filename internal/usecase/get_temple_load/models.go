package get_temple_load

import "time"

// Request модель запроса загрузки храма.
// Нулевые From и To заменяются значениями по умолчанию.
type Request struct {
	TempleID string
	From     time.Time
	To       time.Time // включительно
}

// Response загрузка храма по датам
type Response struct {
	TempleID    string
	TempleName  string
	MaxWorkload int
	From        time.Time
	To          time.Time
	Days        []DayLoad
}

// DayLoad загрузка на одну дату
type DayLoad struct {
	Date               time.Time
	Occupied           int
	Cremations         int
	FreePlaces         int
	FreeCremationSlots int
}
