package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

// SessionEventsChannel is the pub/sub channel carrying session changes.
const SessionEventsChannel = "session:events"

// ErrBrokerNotListening is returned by Subscribe before Listen has opened
// the shared subscription, or after it has ended.
var ErrBrokerNotListening = errors.New("session broker not listening")

// RedisSessionBroker fans session change notifications out across API
// instances through Redis pub/sub. Each process holds a single Redis
// subscription and dispatches events to its local subscribers.
type RedisSessionBroker struct {
	client *redis.Client
	logger *zap.Logger

	mu        sync.Mutex
	listening bool
	nextID    int
	subs      map[int]sessionSubscription
}

type sessionSubscription struct {
	sessionID string
	ch        chan models.SessionEvent
}

// NewRedisSessionBroker constructs a broker on top of client.
func NewRedisSessionBroker(client *redis.Client, logger *zap.Logger) *RedisSessionBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionBroker{client: client, logger: logger, subs: make(map[int]sessionSubscription)}
}

// Publish announces evt to every subscriber.
func (b *RedisSessionBroker) Publish(ctx context.Context, evt models.SessionEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	if err := b.client.Publish(ctx, SessionEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish session event: %w", err)
	}
	return nil
}

// Listen opens the shared subscription and dispatches events until ctx is
// done. It returns once Redis has confirmed the subscription.
func (b *RedisSessionBroker) Listen(ctx context.Context) error {
	b.mu.Lock()
	if b.listening {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	sub := b.client.Subscribe(ctx, SessionEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe session events: %w", err)
	}

	b.mu.Lock()
	b.listening = true
	b.mu.Unlock()

	go func() {
		defer b.stop()
		defer sub.Close() //nolint:errcheck
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				b.dispatch(msg.Payload)
			}
		}
	}()
	return nil
}

// Subscribe streams events for sessionID until ctx is done. The returned
// channel is closed when ctx ends or the shared subscription stops.
func (b *RedisSessionBroker) Subscribe(ctx context.Context, sessionID string) (<-chan models.SessionEvent, error) {
	ch := make(chan models.SessionEvent, 4)
	b.mu.Lock()
	if !b.listening {
		b.mu.Unlock()
		return nil, ErrBrokerNotListening
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = sessionSubscription{sessionID: sessionID, ch: ch}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub.ch)
		}
		b.mu.Unlock()
	}()
	return ch, nil
}

// dispatch decodes payload and hands it to subscribers of its session. Slow
// subscribers drop events rather than stall the shared reader.
func (b *RedisSessionBroker) dispatch(payload string) {
	var evt models.SessionEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		b.logger.Warn("drop malformed session event", zap.Error(err))
		return
	}
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
}

// stop closes every local subscription once the shared reader exits.
func (b *RedisSessionBroker) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listening = false
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
