package botwatch

import "sync"

// subscriber channels are buffered; a full buffer drops the update for
// that subscriber rather than blocking the apply path
const subscriberBuffer = 16

// Latest is a thread-safe holder of the current display [State] with a
// publish-subscribe mechanism for real-time updates.
//
// Latest is where overlapping poll cycles are serialized: states carry a
// sequence number and the holder refuses to move backwards, so the
// display surface always reflects the newest cycle that has completed,
// regardless of the order responses happened to arrive in.
type Latest struct {
	mu      sync.RWMutex
	state   State
	applied bool

	subMu       sync.RWMutex
	subscribers map[chan State]struct{}
}

// NewLatest creates an empty [Latest] holder. It is immediately ready for
// use; no cleanup is required when done.
func NewLatest() *Latest {
	return &Latest{
		subscribers: make(map[chan State]struct{}),
	}
}

// Apply installs a display state and notifies subscribers.
//
// A state whose Seq is lower than the last applied one is stale, meaning
// its cycle was overtaken by a newer one that already completed, and is
// discarded. Returns true if the state was applied, false if discarded.
func (l *Latest) Apply(state State) bool {
	l.mu.Lock()
	if l.applied && state.Seq < l.state.Seq {
		l.mu.Unlock()
		return false
	}
	l.state = state
	l.applied = true
	l.mu.Unlock()

	l.notifySubscribers(state)
	return true
}

// Get returns the current display state. The second return is false if
// nothing has been applied yet.
func (l *Latest) Get() (State, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.applied
}

// Subscribe creates a subscription and returns a channel receiving every
// applied state.
//
// The channel is buffered; if a subscriber falls behind, updates are
// dropped for it rather than blocking the poll pipeline. Callers must
// call [Latest.Unsubscribe] when done to prevent resource leaks.
func (l *Latest) Subscribe() <-chan State {
	ch := make(chan State, subscriberBuffer)

	l.subMu.Lock()
	l.subscribers[ch] = struct{}{}
	l.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (l *Latest) Unsubscribe(ch <-chan State) {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	for subCh := range l.subscribers {
		if subCh == ch {
			delete(l.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the state to all active subscribers without
// blocking.
func (l *Latest) notifySubscribers(state State) {
	l.subMu.RLock()
	defer l.subMu.RUnlock()

	for ch := range l.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the update
		}
	}
}
