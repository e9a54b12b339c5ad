package identityservice

import "github.com/m04kA/WatReservationService/internal/domain"

// Temple модель храма из сервиса идентификации
type Temple struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxWorkload int    `json:"max_workload"`
	Phone       string `json:"phone"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (t *Temple) ToDomain() *domain.Temple {
	return &domain.Temple{
		ID:          t.ID,
		Name:        t.Name,
		Phone:       t.Phone,
		MaxWorkload: t.MaxWorkload,
	}
}

// User модель пользователя из сервиса идентификации
type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (u *User) ToDomain() *domain.Person {
	return &domain.Person{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Phone:     u.Phone,
	}
}
