package dragselect

import "sync"

// Handler processes a pointer event dispatched on a scope.
type Handler func(*PointerEvent)

// Scope is an event surface the recognizer attaches its listeners to. The
// default scope spans the whole program; callers can supply a narrower one
// to confine listening to a single surface.
//
// Subscribe returns a remove func. Removing twice is a safe no-op, and
// removing a handler while a dispatch is in flight is allowed: the in-flight
// dispatch finishes with the handler set it started with.
type Scope interface {
	Subscribe(kind PointerKind, h Handler) (remove func())
	Dispatch(ev *PointerEvent)
}

// ListenerScope is the standard Scope implementation: a subscription
// registry that fans each event out to the handlers registered for its
// kind, in subscription order.
type ListenerScope struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

type subscription struct {
	id   uint64
	kind PointerKind
	fn   Handler
}

// NewScope returns an empty listener scope.
func NewScope() *ListenerScope {
	return &ListenerScope{}
}

func (s *ListenerScope) Subscribe(kind PointerKind, h Handler) (remove func()) {
	if h == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, kind: kind, fn: h})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

func (s *ListenerScope) Dispatch(ev *PointerEvent) {
	if ev == nil {
		return
	}
	s.mu.Lock()
	matched := make([]Handler, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.kind == ev.Kind {
			matched = append(matched, sub.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range matched {
		fn(ev)
	}
}

var documentScope = NewScope()

// DocumentScope returns the shared process-wide scope, the analog of
// listening on the whole document.
func DocumentScope() *ListenerScope {
	return documentScope
}
