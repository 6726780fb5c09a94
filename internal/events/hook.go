package events

import "sync"

// Hook is a callback-based pub/sub. Callbacks run synchronously on the
// publisher's goroutine, outside the lock, so a callback may subscribe or
// cancel other hooks without deadlocking.
// T is the argument type handed to callbacks.
type Hook[T any] struct {
	mu           sync.RWMutex
	callbacks    map[uint64]func(T)
	nextID       uint64
	replayLatest bool
	latest       *T
}

// NewHook creates a hook. With replayLatest set, a newly attached callback
// is invoked immediately with the most recently published value.
func NewHook[T any](replayLatest bool) *Hook[T] {
	return &Hook[T]{
		callbacks:    make(map[uint64]func(T)),
		replayLatest: replayLatest,
	}
}

// Attach registers a callback and returns a detach function.
func (h *Hook[T]) Attach(fn func(T)) func() {
	if fn == nil {
		panic("Hook: callback must not be nil")
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.callbacks[id] = fn
	var replay *T
	if h.replayLatest && h.latest != nil {
		v := *h.latest
		replay = &v
	}
	h.mu.Unlock()

	if replay != nil {
		fn(*replay)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.callbacks, id)
			h.mu.Unlock()
		})
	}
}

// Publish invokes every attached callback with the value.
func (h *Hook[T]) Publish(value T) {
	h.mu.Lock()
	if h.replayLatest {
		v := value
		h.latest = &v
	}
	targets := make([]func(T), 0, len(h.callbacks))
	for _, fn := range h.callbacks {
		targets = append(targets, fn)
	}
	h.mu.Unlock()

	for _, fn := range targets {
		fn(value)
	}
}

// CallbackCount returns the number of attached callbacks.
func (h *Hook[T]) CallbackCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.callbacks)
}
