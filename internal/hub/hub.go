// Package hub owns the set of running arenas, keyed by match id.
package hub

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/DoyleJ11/breach-backend/internal/arena"
)

type HubMsg interface{ isHubMsg() }

// CreateMatch starts a new arena. Reply gets nil if the id is taken.
type CreateMatch struct {
	ID    string
	Reply chan *arena.Arena
}

type GetMatch struct {
	ID    string
	Reply chan *arena.Arena
}

// EnsureMatch returns the arena for ID, starting one if needed.
type EnsureMatch struct {
	ID    string
	Reply chan *arena.Arena
}

type RemoveMatch struct {
	ID    string
	Reply chan bool
}

// ListMatches replies with every arena ordered by id.
type ListMatches struct {
	Reply chan []*arena.Arena
}

type ShutdownHub struct{}

func (CreateMatch) isHubMsg() {}
func (GetMatch) isHubMsg()    {}
func (EnsureMatch) isHubMsg() {}
func (RemoveMatch) isHubMsg() {}
func (ListMatches) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// Factory builds an arena bound to ctx.
type Factory func(ctx context.Context, id string) *arena.Arena

type Hub struct {
	inbox   chan HubMsg
	arenas  map[string]*arena.Arena
	factory Factory
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, factory Factory, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		arenas:  make(map[string]*arena.Arena),
		factory: factory,
		log:     log.Named("hub"),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateMatch:
				if h.arenas[msg.ID] != nil {
					msg.Reply <- nil
					break
				}
				msg.Reply <- h.start(msg.ID)

			case GetMatch:
				msg.Reply <- h.arenas[msg.ID] // may be nil

			case EnsureMatch:
				if a := h.arenas[msg.ID]; a != nil {
					msg.Reply <- a
					break
				}
				msg.Reply <- h.start(msg.ID)

			case RemoveMatch:
				a, ok := h.arenas[msg.ID]
				if ok {
					a.Send(context.Background(), arena.Shutdown{})
					delete(h.arenas, msg.ID)
					h.log.Info("match removed", zap.String("match_id", msg.ID))
				}
				if msg.Reply != nil {
					msg.Reply <- ok
				}

			case ListMatches:
				out := make([]*arena.Arena, 0, len(h.arenas))
				for _, a := range h.arenas {
					out = append(out, a)
				}
				slices.SortFunc(out, func(x, y *arena.Arena) int { return strings.Compare(x.ID(), y.ID()) })
				msg.Reply <- out

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) start(id string) *arena.Arena {
	a := h.factory(h.ctx, id)
	h.arenas[id] = a
	h.log.Info("match started", zap.String("match_id", id))
	return a
}

func (h *Hub) shutdown() {
	for id, a := range h.arenas {
		a.Send(context.Background(), arena.Shutdown{})
		delete(h.arenas, id)
	}
	h.cancel()
}

// The helpers below wrap the request/reply messages. They return the zero
// value once ctx is done or the hub has stopped.

func (h *Hub) Create(ctx context.Context, id string) *arena.Arena {
	reply := make(chan *arena.Arena, 1)
	a, _ := ask(ctx, h, CreateMatch{ID: id, Reply: reply}, reply)
	return a
}

func (h *Hub) Get(ctx context.Context, id string) *arena.Arena {
	reply := make(chan *arena.Arena, 1)
	a, _ := ask(ctx, h, GetMatch{ID: id, Reply: reply}, reply)
	return a
}

func (h *Hub) Ensure(ctx context.Context, id string) *arena.Arena {
	reply := make(chan *arena.Arena, 1)
	a, _ := ask(ctx, h, EnsureMatch{ID: id, Reply: reply}, reply)
	return a
}

func (h *Hub) Remove(ctx context.Context, id string) bool {
	reply := make(chan bool, 1)
	ok, _ := ask(ctx, h, RemoveMatch{ID: id, Reply: reply}, reply)
	return ok
}

func (h *Hub) List(ctx context.Context) []*arena.Arena {
	reply := make(chan []*arena.Arena, 1)
	out, _ := ask(ctx, h, ListMatches{Reply: reply}, reply)
	return out
}

func ask[T any](ctx context.Context, h *Hub, msg HubMsg, reply chan T) (T, bool) {
	var zero T
	if h.ctx.Err() != nil {
		return zero, false
	}
	select {
	case h.inbox <- msg:
	case <-h.ctx.Done():
		return zero, false
	case <-ctx.Done():
		return zero, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-h.ctx.Done():
		return zero, false
	case <-ctx.Done():
		return zero, false
	}
}
