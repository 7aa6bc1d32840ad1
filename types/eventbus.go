package types

import (
	"sync"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

// EventBus handles subscription and publishing of session events,
// keyed by the connected account address.
type EventBus struct {
	subscribers map[string][]chan SessionEvent
	mu          sync.RWMutex
}

// NewEventBus creates a new EventBus instance
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan SessionEvent),
	}
}

// Subscribe subscribes to events for a specific account address
func (eb *EventBus) Subscribe(address string) chan SessionEvent {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	key := NormalizeAddress(address)
	ch := make(chan SessionEvent, 10) // Buffered channel to prevent blocking
	eb.subscribers[key] = append(eb.subscribers[key], ch)

	logx.Debug("EVENTBUS", "Subscribed to events for account: ", key)
	return ch
}

// Unsubscribe removes a subscription for an account address
func (eb *EventBus) Unsubscribe(address string, ch chan SessionEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	key := NormalizeAddress(address)
	if subs, exists := eb.subscribers[key]; exists {
		for i, sub := range subs {
			if sub == ch {
				eb.subscribers[key] = append(subs[:i], subs[i+1:]...)
				close(ch)

				if len(eb.subscribers[key]) == 0 {
					delete(eb.subscribers, key)
				}
				break
			}
		}
	}
}

// Publish publishes an event to all subscribers of its account
func (eb *EventBus) Publish(event SessionEvent) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	key := NormalizeAddress(event.Address())
	subs, exists := eb.subscribers[key]
	if !exists {
		return
	}

	for _, ch := range subs {
		select {
		case ch <- event:
			// Event sent successfully
		default:
			logx.Warn("EVENTBUS", "subscriber channel full for account: ", key)
		}
	}
}

// SubscriberCount returns the number of subscribers for an account
func (eb *EventBus) SubscriberCount(address string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if subs, exists := eb.subscribers[NormalizeAddress(address)]; exists {
		return len(subs)
	}
	return 0
}
