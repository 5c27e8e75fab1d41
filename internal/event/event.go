package event

import (
	"log/slog"
	"reflect"
)

// EventType names a kind of notification.
type EventType string

// Event is a notification emitted by the simulation. Data holds one of the
// payload structs from types.go.
type Event struct {
	Type EventType
	Data any
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to listeners. Delivery is best-effort: a
// panicking listener is logged and skipped, the simulation carries on.
type Dispatcher struct {
	listeners map[EventType][]Listener
	log       *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger means slog.Default().
func NewDispatcher(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
		log:       log,
	}
}

// Subscribe registers listener for eventType.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll registers listener for every type in types.
func (d *Dispatcher) SubscribeAll(listener Listener, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, listener)
	}
}

// Unsubscribe removes the first registration of listener for eventType.
// Only comparable listeners can be removed; for others, such as
// ListenerFunc, it does nothing.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listener == nil || !reflect.TypeOf(listener).Comparable() {
		return
	}
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers event to its subscribers in subscription order.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		d.deliver(listener, event)
	}
}

func (d *Dispatcher) deliver(listener Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("event listener panicked", "event", event.Type, "panic", r)
		}
	}()
	listener.OnEvent(event)
}
