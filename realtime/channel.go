package realtime

import (
	"sync"
)

// bindBuffer is the per-binding channel buffer. If a consumer falls this
// far behind, further events are dropped for that binding rather than
// blocking the read loop.
const bindBuffer = 100

// Channel is a subscription to one named channel on a [Conn].
//
// Events are consumed through bindings: [Channel.Bind] returns a Go
// channel that receives every event with a matching name, [Channel.BindAll]
// one that receives everything. Bindings are independent; each receives its
// own copy of an event.
//
// A Channel survives reconnects. The connection resubscribes automatically,
// reauthorizing private channels with a fresh socket id.
type Channel struct {
	conn *Conn
	name string

	mu     sync.RWMutex
	binds  map[string]map[chan Event]struct{}
	closed bool

	subscribed chan struct{}
	subOnce    sync.Once
}

func newChannel(conn *Conn, name string) *Channel {
	return &Channel{
		conn:       conn,
		name:       name,
		binds:      make(map[string]map[chan Event]struct{}),
		subscribed: make(chan struct{}),
	}
}

// Name returns the channel name, e.g. "private-tenant.42".
func (ch *Channel) Name() string {
	return ch.name
}

// Subscribed returns a channel closed once the server confirms the
// subscription. Wait on it together with [Conn.Done] so a dying connection
// does not block forever:
//
//	select {
//	case <-ch.Subscribed():
//	case <-conn.Done():
//	    return conn.Err()
//	}
func (ch *Channel) Subscribed() <-chan struct{} {
	return ch.subscribed
}

// Bind returns a channel receiving every event named event.
//
// The returned channel is buffered; events beyond the buffer are dropped
// for this binding. It is closed when the Channel or the connection closes.
func (ch *Channel) Bind(event string) <-chan Event {
	return ch.bind(event)
}

// BindAll returns a channel receiving every event on this channel
// regardless of name. Same buffering and lifecycle as [Channel.Bind].
func (ch *Channel) BindAll() <-chan Event {
	return ch.bind("")
}

func (ch *Channel) bind(event string) chan Event {
	c := make(chan Event, bindBuffer)

	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		close(c)
		return c
	}
	set, ok := ch.binds[event]
	if !ok {
		set = make(map[chan Event]struct{})
		ch.binds[event] = set
	}
	set[c] = struct{}{}
	ch.mu.Unlock()

	return c
}

// Unbind removes a binding created by [Channel.Bind] or [Channel.BindAll]
// and closes it. Safe to call with an unknown channel.
func (ch *Channel) Unbind(c <-chan Event) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for _, set := range ch.binds {
		for bound := range set {
			if bound == c {
				delete(set, bound)
				close(bound)
				return
			}
		}
	}
}

// Close unsubscribes from the channel and closes every binding. The Conn
// stays usable for other channels.
func (ch *Channel) Close() error {
	err := ch.conn.unsubscribe(ch)
	ch.shutdown()
	return err
}

// dispatch fans an event out to matching bindings without blocking; slow
// consumers lose events rather than stalling the read loop.
func (ch *Channel) dispatch(ev Event) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	for c := range ch.binds[ev.Name] {
		select {
		case c <- ev:
		default:
		}
	}
	for c := range ch.binds[""] {
		select {
		case c <- ev:
		default:
		}
	}
}

// markSubscribed closes the subscribed signal exactly once.
func (ch *Channel) markSubscribed() {
	ch.subOnce.Do(func() { close(ch.subscribed) })
}

// shutdown closes all bindings and refuses new ones. Idempotent.
func (ch *Channel) shutdown() {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return
	}
	ch.closed = true
	var chans []chan Event
	for _, set := range ch.binds {
		for c := range set {
			chans = append(chans, c)
		}
	}
	ch.binds = make(map[string]map[chan Event]struct{})
	ch.mu.Unlock()

	for _, c := range chans {
		close(c)
	}
}
