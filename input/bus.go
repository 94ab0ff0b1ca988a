package input

// Handler receives broadcast events. Handlers must not mutate the Touches slice.
type Handler func(Event)

// Bus broadcasts events to every subscriber in subscription order.
// It is used from a single goroutine, like the frame loop it feeds.
type Bus struct {
	next     int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is safe.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.next++
	id := b.next
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every current subscriber. Subscribers added or
// removed by a handler take effect from the next Publish.
func (b *Bus) Publish(ev Event) {
	snapshot := b.handlers
	for _, s := range snapshot {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	return len(b.handlers)
}
