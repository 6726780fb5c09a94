package events

import "sync"

// Feed is a channel-based pub/sub fan-out. Publishers never block: a
// subscriber that cannot keep up drops messages rather than stalling the
// tick loop feeding it.
// T is the type of the published value.
type Feed[T any] struct {
	mu           sync.RWMutex
	subs         map[uint64]chan T
	nextID       uint64
	replayLatest bool
	latest       *T
}

// NewFeed creates a feed. With replayLatest set, a new subscriber immediately
// receives the most recently published value, so late-joining consumers (the
// dashboard panes) start with current data instead of waiting for the next
// publish.
func NewFeed[T any](replayLatest bool) *Feed[T] {
	return &Feed[T]{
		subs:         make(map[uint64]chan T),
		replayLatest: replayLatest,
	}
}

// Subscribe registers a new receiver with the given channel buffer and
// returns it along with a cancel function. Cancel is idempotent.
func (f *Feed[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	var replay *T
	if f.replayLatest && f.latest != nil {
		v := *f.latest
		replay = &v
	}
	f.mu.Unlock()

	if replay != nil {
		// buffer >= 1 and the channel is fresh, this cannot block
		ch <- *replay
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers the value to every subscriber without blocking. Full
// subscriber channels are skipped.
func (f *Feed[T]) Publish(value T) {
	f.mu.Lock()
	if f.replayLatest {
		v := value
		f.latest = &v
	}
	targets := make([]chan T, 0, len(f.subs))
	for _, ch := range f.subs {
		targets = append(targets, ch)
	}
	f.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- value:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
