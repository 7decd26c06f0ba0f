// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"fmt"
	"sync"

	"github.com/danielhkuo/ballotbox/models"
)

// HandlerFunc receives one notification
type HandlerFunc func(e models.Event)

// Notifier fans notifications out to in-process subscribers. The durable
// copy of every notification lives in the election_event table; this is the
// push-side convenience for components that don't want to poll it.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[string][]HandlerFunc
}

func NewNotifier() *Notifier {
	return &Notifier{
		subscribers: make(map[string][]HandlerFunc),
	}
}

// Subscribe registers fn for the given event kind and returns its
// subscriber index for Unsubscribe.
func (n *Notifier) Subscribe(kind string, fn HandlerFunc) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subscribers[kind] = append(n.subscribers[kind], fn)

	return len(n.subscribers[kind]) - 1
}

// Unsubscribe removes the specified subscriber
func (n *Notifier) Unsubscribe(kind string, subscriberIdx int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if subscriberIdx >= len(n.subscribers[kind]) {
		return fmt.Errorf("no subscriber %v for %s", subscriberIdx, kind)
	}

	n.subscribers[kind][subscriberIdx] = nil

	return nil
}

// Notify delivers e to every subscriber of its kind, in subscription order.
// Dispatch is synchronous so subscribers observe events in feed order.
func (n *Notifier) Notify(e models.Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, fn := range n.subscribers[e.Kind] {
		if fn != nil {
			fn(e)
		}
	}
}
