package hub

import (
	"context"
	"sync"

	"github.com/Alex-Aron/LeagueOverlay/internal/overlay"
)

type Msg interface{ isHubMsg() }

type Join struct {
	ClientID string
	Outbox   chan overlay.View // where this client wants to receive views
}

type Leave struct{ ClientID string }

type Publish struct{ View overlay.View }

type GetState struct {
	Reply chan State
}

type Shutdown struct{}

func (Join) isHubMsg()     {}
func (Leave) isHubMsg()    {}
func (Publish) isHubMsg()  {}
func (GetState) isHubMsg() {}
func (Shutdown) isHubMsg() {}

// State is a copy of the hub's internals, for tests and /healthz.
type State struct {
	NumClients int
	Published  int
	Latest     *overlay.View
}

// Hub owns the set of connected overlay clients. All access goes through
// its inbox so the client map is only touched by the loop goroutine.
type Hub struct {
	inbox     chan Msg
	clients   map[string]chan overlay.View
	latest    *overlay.View
	published int
	ctx       context.Context
	cancel    context.CancelFunc

	// closed is set once the loop stops reading; Send holds mu.RLock while
	// enqueueing so nothing lands in the inbox after the final drain.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan overlay.View),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

// Done is closed once the hub has shut down and closed every outbox.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Publish implements overlay.Broadcaster. It gives up if the hub is gone.
func (h *Hub) Publish(v overlay.View) {
	h.Send(Publish{View: v})
}

// Send delivers m to the loop. It returns false once the hub has shut down,
// in which case a Join's outbox was not registered and will not be closed.
func (h *Hub) Send(m Msg) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return false
	}
	select {
	case h.inbox <- m:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// Snapshot asks the loop for a copy of its state.
func (h *Hub) Snapshot(ctx context.Context) (State, bool) {
	reply := make(chan State, 1)
	if !h.Send(GetState{Reply: reply}) {
		return State{}, false
	}
	select {
	case s := <-reply:
		return s, true
	case <-ctx.Done():
		return State{}, false
	case <-h.ctx.Done():
		return State{}, false
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send the current view immediately
				h.clients[msg.ClientID] = msg.Outbox
				if h.latest != nil {
					h.deliver(msg.ClientID, msg.Outbox, *h.latest)
				}

			case Leave:
				if ch, ok := h.clients[msg.ClientID]; ok {
					close(ch)
					delete(h.clients, msg.ClientID)
				}

			case Publish:
				v := msg.View
				h.latest = &v
				h.published++
				h.broadcast(v)

			case GetState:
				var latest *overlay.View
				if h.latest != nil {
					v := *h.latest
					latest = &v
				}
				msg.Reply <- State{
					NumClients: len(h.clients),
					Published:  h.published,
					Latest:     latest,
				}

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	defer close(h.done)
	// Cancel first so Senders blocked on a full inbox let go of the lock.
	h.cancel()
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	for id, ch := range h.clients {
		close(ch) // Tell client no more views
		delete(h.clients, id)
	}
	// Joins accepted but never processed still expect their outbox closed.
	for {
		select {
		case m := <-h.inbox:
			if j, ok := m.(Join); ok {
				close(j.Outbox)
			}
		default:
			return
		}
	}
}

func (h *Hub) broadcast(v overlay.View) {
	for id, ch := range h.clients {
		h.deliver(id, ch, v)
	}
}

func (h *Hub) deliver(id string, ch chan overlay.View, v overlay.View) {
	select {
	case ch <- v:
		//ok
	default:
		// Client is slow/full - drop them.
		close(ch)
		delete(h.clients, id)
	}
}
