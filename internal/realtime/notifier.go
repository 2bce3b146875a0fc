package realtime

import "sync"

// Entities the back office reacts to. Notifications carry no payload; the
// only valid reaction is a silent re-pull of the matching collection.
const (
	EntityProduct  = "product"
	EntityAsset    = "asset"
	EntitySettings = "settings"
)

// Notifier fans change signals out to subscribers.
type Notifier interface {
	// Subscribe registers fn for an entity and returns its unsubscribe func.
	Subscribe(entity string, fn func()) (unsubscribe func())
	// Publish signals that records of the entity changed.
	Publish(entity string)
}

// Bus is the in-process Notifier. Handlers run on the publishing goroutine;
// subscribers are expected to do no more than schedule a refresh.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]func()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func())}
}

func (b *Bus) Subscribe(entity string, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[entity] == nil {
		b.subs[entity] = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[entity][id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[entity], id)
	}
}

func (b *Bus) Publish(entity string) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subs[entity]))
	for _, fn := range b.subs[entity] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
