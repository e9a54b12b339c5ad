package get_wat_load

import (
	"github.com/m04kA/WatReservationService/internal/domain"
	getTempleLoad "github.com/m04kA/WatReservationService/internal/usecase/get_temple_load"
)

// LoadResponse HTTP response model
type LoadResponse struct {
	WatID       string    `json:"watId"`
	WatName     string    `json:"watName"`
	MaxWorkload int       `json:"maxWorkload"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Days        []DayLoad `json:"days"`
}

// DayLoad загрузка на дату
type DayLoad struct {
	Date               string `json:"date"`
	Occupied           int    `json:"occupied"`
	Cremations         int    `json:"cremations"`
	FreePlaces         int    `json:"freePlaces"`
	FreeCremationSlots int    `json:"freeCremationSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTempleLoad.Response) *LoadResponse {
	days := make([]DayLoad, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayLoad{
			Date:               d.Date.Format(domain.DateFormat),
			Occupied:           d.Occupied,
			Cremations:         d.Cremations,
			FreePlaces:         d.FreePlaces,
			FreeCremationSlots: d.FreeCremationSlots,
		})
	}
	return &LoadResponse{
		WatID:       resp.TempleID,
		WatName:     resp.TempleName,
		MaxWorkload: resp.MaxWorkload,
		From:        resp.From.Format(domain.DateFormat),
		To:          resp.To.Format(domain.DateFormat),
		Days:        days,
	}
}
