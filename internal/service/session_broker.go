package service

import (
	"context"
	"sync"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

// LocalSessionBroker delivers session events within a single process. It is
// used when Redis is disabled.
type LocalSessionBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]localSubscription
}

type localSubscription struct {
	sessionID string
	ch        chan models.SessionEvent
}

// NewLocalSessionBroker constructs an empty broker.
func NewLocalSessionBroker() *LocalSessionBroker {
	return &LocalSessionBroker{subs: make(map[int]localSubscription)}
}

// Publish delivers evt to subscribers of its session. Slow subscribers drop
// events rather than block the publisher.
func (b *LocalSessionBroker) Publish(_ context.Context, evt models.SessionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.sessionID != evt.SessionID {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
		}
	}
	return nil
}

// Subscribe streams events for sessionID until ctx is done, then closes the
// channel.
func (b *LocalSessionBroker) Subscribe(ctx context.Context, sessionID string) (<-chan models.SessionEvent, error) {
	ch := make(chan models.SessionEvent, 4)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = localSubscription{sessionID: sessionID, ch: ch}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}
