package notifications

import "time"

// DefaultQueue очередь сервиса доставки уведомлений
const DefaultQueue = "notifications.requested"

// Message тело сообщения в очереди уведомлений
type Message struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate проверяет обязательные поля сообщения
func (m *Message) Validate() error {
	if m.Title == "" || m.RecipientID == "" {
		return ErrInvalidMessage
	}
	return nil
}
