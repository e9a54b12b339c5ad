package notifications

import (
	"errors"

	"github.com/m04kA/WatReservationService/pkg/errs"
)

var (
	// ErrPublish возвращается, когда уведомление не удалось отправить в брокер
	ErrPublish = errs.Mark(errors.New("notifications: failed to publish"), errs.ErrUpstreamUnavailable)

	// ErrBufferFull возвращается, когда очередь на публикацию переполнена
	ErrBufferFull = errs.Mark(errors.New("notifications: outbox is full"), errs.ErrUpstreamUnavailable)

	// ErrInvalidMessage возвращается для уведомления без получателя или заголовка
	ErrInvalidMessage = errors.New("notifications: invalid message")

	// ErrClosed возвращается после вызова Close
	ErrClosed = errors.New("notifications: publisher closed")
)
