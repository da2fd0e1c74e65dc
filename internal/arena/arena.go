// Package arena runs one match on its own goroutine. Everything that touches
// engine.Match goes through the inbox.
package arena

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/engine"
	"github.com/DoyleJ11/breach-backend/internal/session"
	"github.com/DoyleJ11/breach-backend/internal/store"
)

type Msg interface{ isArenaMsg() }

// Connect registers a connection's outbox. The connection only starts
// receiving match broadcasts once it has joined.
type Connect struct {
	ConnID string
	Outbox chan engine.Event
}

type FromClient struct {
	ConnID string
	Cmd    engine.Command
}

// Leave is sent when the socket closes. It doubles as the disconnect command.
type Leave struct{ ConnID string }

type TimerFired struct{ Timer engine.Timer }

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Connect) isArenaMsg()    {}
func (FromClient) isArenaMsg() {}
func (Leave) isArenaMsg()      {}
func (TimerFired) isArenaMsg() {}
func (GetState) isArenaMsg()   {}
func (Shutdown) isArenaMsg()   {}

// View is a copy of the arena's state, safe to read on any goroutine.
type View struct {
	NumClients int
	Match      engine.Match
}

// Archive receives finished rounds. store.Writer satisfies it.
type Archive interface {
	Enqueue(store.RoundResult) bool
}

type client struct {
	out    chan engine.Event
	joined bool
}

type Arena struct {
	id       string
	inbox    chan Msg
	match    *engine.Match
	clients  map[string]*client
	pending  map[uint64]*time.Timer
	sessions *session.Directory
	archive  Archive
	now      func() time.Time
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type Option func(*Arena)

func WithLogger(l *zap.Logger) Option { return func(a *Arena) { a.log = l } }

// WithSessions shares a directory across arenas. Each arena gets its own
// otherwise.
func WithSessions(d *session.Directory) Option { return func(a *Arena) { a.sessions = d } }

func WithArchive(ar Archive) Option { return func(a *Arena) { a.archive = ar } }

func WithClock(now func() time.Time) Option { return func(a *Arena) { a.now = now } }

func New(parent context.Context, id string, cat *catalog.Catalog, opts ...Option) *Arena {
	ctx, cancel := context.WithCancel(parent)
	a := &Arena{
		id:      id,
		inbox:   make(chan Msg, 64),
		clients: make(map[string]*client),
		pending: make(map[uint64]*time.Timer),
		now:     time.Now,
		log:     zap.NewNop(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sessions == nil {
		a.sessions = session.NewDirectory()
	}
	a.log = a.log.With(zap.String("match_id", id))
	a.match = engine.NewMatch(id, cat, a.now())

	go a.loop()
	return a
}

func (a *Arena) ID() string { return a.id }

// Inbox exposes the arena's mailbox. Prefer Send, which cannot block on a
// stopped arena.
func (a *Arena) Inbox() chan<- Msg { return a.inbox }

// Done is closed once the arena has stopped.
func (a *Arena) Done() <-chan struct{} { return a.ctx.Done() }

// Send delivers msg unless ctx or the arena finishes first.
func (a *Arena) Send(ctx context.Context, msg Msg) bool {
	if a.ctx.Err() != nil {
		return false
	}
	select {
	case a.inbox <- msg:
		return true
	case <-a.ctx.Done():
		return false
	case <-ctx.Done():
		return false
	}
}

// State asks the arena for a View.
func (a *Arena) State(ctx context.Context) (View, bool) {
	reply := make(chan View, 1)
	if !a.Send(ctx, GetState{Reply: reply}) {
		return View{}, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-a.ctx.Done():
		return View{}, false
	case <-ctx.Done():
		return View{}, false
	}
}

func (a *Arena) loop() {
	for {
		select {
		case <-a.ctx.Done():
			a.shutdown()
			return

		case m := <-a.inbox:
			switch msg := m.(type) {
			case Connect:
				a.clients[msg.ConnID] = &client{out: msg.Outbox}

			case FromClient:
				a.fromClient(msg.ConnID, msg.Cmd)

			case Leave:
				a.leave(msg.ConnID)

			case TimerFired:
				delete(a.pending, msg.Timer.Tag.Seq)
				a.apply("", "", engine.TimerFired{Timer: msg.Timer})

			case GetState:
				msg.Reply <- View{
					NumClients: len(a.clients),
					Match:      a.match.Clone(),
				}

			case Shutdown:
				a.shutdown()
				return
			}
		}
	}
}

func (a *Arena) fromClient(connID string, cmd engine.Command) {
	playerID := connID
	if _, isJoin := cmd.(engine.Join); !isJoin {
		ref, ok := a.sessions.Lookup(connID)
		if !ok || ref.MatchID != a.id {
			return
		}
		playerID = ref.PlayerID
	}
	a.apply(connID, playerID, cmd)
}

func (a *Arena) leave(connID string) {
	if c, ok := a.clients[connID]; ok {
		close(c.out)
		delete(a.clients, connID)
	}
	ref, ok := a.sessions.Lookup(connID)
	if !ok || ref.MatchID != a.id {
		return
	}
	a.sessions.Remove(connID)
	a.apply(connID, ref.PlayerID, engine.Disconnect{})
	a.log.Info("player left", zap.String("conn_id", connID))
}

func (a *Arena) apply(connID, playerID string, cmd engine.Command) {
	events, timers, err := engine.Apply(a.match, playerID, cmd, a.now())
	if err != nil {
		a.log.Debug("command rejected", zap.String("conn_id", connID), zap.Error(err))
		a.deliver(connID, engine.Event{
			To:      engine.Only(connID),
			Payload: engine.ErrorMessage{Message: err.Error()},
		})
		return
	}

	if _, ok := cmd.(engine.Join); ok && engine.ContainsEvent(events, engine.EvtJoined) {
		a.sessions.Register(connID, a.id, playerID)
		if c, ok := a.clients[connID]; ok {
			c.joined = true
		}
		a.log.Info("player joined", zap.String("conn_id", connID), zap.Int("players", a.match.NumPlayers()))
	}

	for _, t := range timers {
		a.schedule(t)
	}
	a.dispatch(events)
}

func (a *Arena) schedule(t engine.Timer) {
	a.pending[t.Tag.Seq] = time.AfterFunc(t.After, func() {
		select {
		case a.inbox <- TimerFired{Timer: t}:
		case <-a.ctx.Done():
		}
	})
}

func (a *Arena) dispatch(events []engine.Event) {
	for _, ev := range events {
		a.observe(ev)
		if ev.To.Mode == engine.ToOne {
			a.deliver(ev.To.PlayerID, ev)
			continue
		}
		for id, c := range a.clients {
			if !c.joined || (ev.To.Mode == engine.ToAllExcept && id == ev.To.PlayerID) {
				continue
			}
			a.deliver(id, ev)
		}
	}
}

// deliver never blocks. A client whose outbox is full is dropped.
func (a *Arena) deliver(connID string, ev engine.Event) {
	c, ok := a.clients[connID]
	if !ok {
		return
	}
	select {
	case c.out <- ev:
	default:
		a.log.Warn("dropping slow client", zap.String("conn_id", connID))
		close(c.out)
		delete(a.clients, connID)
	}
}

func (a *Arena) observe(ev engine.Event) {
	switch p := ev.Payload.(type) {
	case engine.PhaseChanged:
		a.log.Info("phase changed", zap.String("phase", string(p.Phase)), zap.Int("round", p.Round))
	case engine.RoundEnded:
		a.log.Info("round ended",
			zap.Int("round", p.Round),
			zap.String("winner", string(p.Winner)),
			zap.String("reason", p.Reason))
		if a.archive != nil {
			a.archive.Enqueue(store.RoundResult{
				MatchID:       a.id,
				Round:         p.Round,
				Winner:        string(p.Winner),
				Reason:        p.Reason,
				AttackerScore: p.Scores.Attackers,
				DefenderScore: p.Scores.Defenders,
				EndedAt:       a.now(),
			})
		}
	}
}

func (a *Arena) shutdown() {
	for seq, t := range a.pending {
		t.Stop()
		delete(a.pending, seq)
	}
	for id, c := range a.clients {
		close(c.out) // tell the writer no more events are coming
		delete(a.clients, id)
	}
	for _, id := range slices.Concat(a.match.Attackers, a.match.Defenders) {
		a.sessions.Remove(id)
	}
	a.cancel()
}
