// Package keylock сериализует операции по ключу (например, по ID храма).
package keylock

import (
	"context"
	"errors"
	"sync"
)

// ErrLockUnavailable возвращается, если хранилище блокировок недоступно
var ErrLockUnavailable = errors.New("keylock: lock backend unavailable")

// Locker захватывает блокировку по ключу. Возвращённая функция освобождает её
// и может вызываться повторно без эффекта.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Local блокировки внутри одного процесса
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	slot chan struct{}
	refs int
}

// NewLocal создает Locker на мьютексах процесса
func NewLocal() *Local {
	return &Local{entries: make(map[string]*entry)}
}

// Lock ждёт освобождения ключа или отмены контекста
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{slot: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.slot <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.slot
			l.release(key, e)
		})
	}, nil
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size количество ключей, за которые кто-то держится или ждёт
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
