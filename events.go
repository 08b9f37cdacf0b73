package shelves

import (
	"context"
	"fmt"
)

// EventKind tells what happened to a catalog.
type EventKind int

// Kinds of catalog events.
const (
	BookAdded EventKind = iota
	BookRemoved
	AvailabilityChanged
	CatalogReset
)

func (k EventKind) String() string {
	switch k {
	case BookAdded:
		return "added"
	case BookRemoved:
		return "removed"
	case AvailabilityChanged:
		return "availability"
	case CatalogReset:
		return "reset"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is broadcast to subscribers after a catalog has changed.
// For CatalogReset, Book is the zero value.
//
// Seq numbers the changes of a catalog, starting at 1, in the order they
// have been applied. Events of a single goroutine's operations arrive in
// that order; events of concurrent operations may overtake each other and
// have to be ordered by Seq if that matters.
type Event struct {
	Seq  uint64
	Kind EventKind
	Book Book
}

func (ev Event) String() string {
	if ev.Kind == CatalogReset {
		return fmt.Sprintf("#%d catalog reset", ev.Seq)
	}
	return fmt.Sprintf("#%d %s: %s", ev.Seq, ev.Kind, ev.Book)
}

// Subscribe registers a subscriber for catalog events. Messages on the
// returned channel are of type Event. capacity is the size of the channel's
// buffer; a subscriber falling behind more than capacity events stalls the
// publishing catalog operations, but never the catalog's lock.
//
// The channel is closed when ctx is done or the catalog is closed.
// ok is false if the catalog has already been closed.
func (c *Catalog) Subscribe(ctx context.Context, capacity uint) (events chan interface{}, ok bool) {
	return c.cast.Sub(ctx, capacity)
}

// Unsubscribe removes a subscription created with Subscribe.
func (c *Catalog) Unsubscribe(events chan interface{}) {
	c.cast.Unsub(events)
}

// Close stops broadcasting events and closes all subscriber channels.
// The catalog remains usable.
func (c *Catalog) Close() {
	c.cast.Close()
}

// event numbers a change. It must be called while holding c.mx.
func (c *Catalog) event(kind EventKind, b Book) Event {
	c.seq++
	return Event{Seq: c.seq, Kind: kind, Book: b}
}

// publish must not be called while holding c.mx.
func (c *Catalog) publish(ev Event) {
	if !c.cast.Pub(ev) {
		tracer().Debugf("catalog: event dropped, broadcaster closed: %s", ev)
	}
}
