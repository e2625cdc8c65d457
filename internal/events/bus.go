package events

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously to every current subscriber, in
// subscription order, before Publish returns. A Bus is owned by one session
// and is not safe for concurrent use.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish notifies all subscribers. A nil bus drops the event.
// Handlers subscribed during delivery only see later events.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	subs := b.subs
	for _, s := range subs {
		s.handler(e)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	return len(b.subs)
}
