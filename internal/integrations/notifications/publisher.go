package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultBufferSize = 256
	heartbeat         = 10 * time.Second
)

// Publisher публикует запросы на уведомления в RabbitMQ.
// Send только кладёт сообщение в ограниченный буфер; публикацией занимается
// фоновая горутина, поэтому запрос никогда не ждёт брокер.
// Соединение открывается лениво и пересоздаётся после ошибки.
type Publisher struct {
	url     string
	queue   string
	timeout time.Duration
	log     Logger

	mu     sync.RWMutex
	closed bool
	outbox chan []byte
	done   chan struct{}

	// conn и ch используются только фоновой горутиной
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher создает publisher и запускает фоновую отправку.
// timeout ограничивает подключение к брокеру и каждую публикацию.
func NewPublisher(url, queue string, timeout time.Duration, bufferSize int, log Logger) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	p := &Publisher{
		url:     url,
		queue:   queue,
		timeout: timeout,
		log:     log,
		outbox:  make(chan []byte, bufferSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Send ставит уведомление в очередь на публикацию и сразу возвращается.
// Переполненный буфер возвращает ErrBufferFull, ошибки брокера только логируются.
func (p *Publisher) Send(ctx context.Context, title, description, recipientID string) error {
	msg := Message{
		Title:       title,
		Description: description,
		RecipientID: recipientID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.outbox <- body:
		return nil
	default:
		return fmt.Errorf("%w: recipient=%s", ErrBufferFull, recipientID)
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	defer p.reset()

	for body := range p.outbox {
		if err := p.publish(body); err != nil {
			p.log.Error("Notification publish failed: %v", err)
		}
	}
}

func (p *Publisher) publish(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("%w: queue=%s: %v", ErrPublish, p.queue, err)
	}

	return nil
}

// channel возвращает открытый канал, при необходимости переподключаясь
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	// Дедлайн DefaultDial покрывает и TCP-подключение, и AMQP-рукопожатие
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:      amqp.DefaultDial(p.timeout),
		Heartbeat: heartbeat,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrPublish, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}

	// Очередь durable, чтобы сообщения переживали перезапуск брокера
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrPublish, p.queue, err)
	}

	p.log.Info("Connected to RabbitMQ, queue=%s", p.queue)
	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close перестаёт принимать уведомления и ждёт, пока буфер будет отправлен,
// но не дольше ctx. Неотправленные сообщения при этом теряются.
func (p *Publisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.outbox)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.log.Warn("Notification publisher closed with %d unsent messages", len(p.outbox))
		return ctx.Err()
	}
}
