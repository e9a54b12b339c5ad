package notifier

import "context"

// Gateway шлюз доставки уведомлений (RabbitMQ или лог)
type Gateway interface {
	Send(ctx context.Context, title, description, recipientID string) error
}

// Metrics счётчики исходов отправки
type Metrics interface {
	ObserveNotification(kind, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
