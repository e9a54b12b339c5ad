package notifications

import "context"

// LogGateway пишет уведомления в лог вместо брокера (notifications.enabled = false)
type LogGateway struct {
	log Logger
}

// NewLogGateway создает gateway, который только логирует уведомления
func NewLogGateway(log Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Send(ctx context.Context, title, description, recipientID string) error {
	msg := Message{Title: title, Description: description, RecipientID: recipientID}
	if err := msg.Validate(); err != nil {
		return err
	}
	g.log.Info("Notification for recipient=%s: %s", recipientID, title)
	return nil
}
