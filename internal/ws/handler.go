package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/breach-backend/internal/arena"
	"github.com/DoyleJ11/breach-backend/internal/engine"
	"github.com/DoyleJ11/breach-backend/internal/hub"
	"github.com/DoyleJ11/breach-backend/internal/protocol"
)

const (
	writeTimeout = 3 * time.Second
	readLimit    = 16 << 10
)

type Options struct {
	// DefaultMatch is used when the request has no ?match= parameter.
	DefaultMatch string
	// OriginPatterns is passed to websocket.Accept. Same-origin requests are
	// always allowed.
	OriginPatterns []string
	OutboxSize     int
	Log            *zap.Logger
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 64
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	baseLog := opts.Log.Named("ws")

	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("match")
		if matchID == "" {
			matchID = opts.DefaultMatch
		}
		if matchID == "" {
			http.Error(w, "missing match", http.StatusBadRequest)
			return
		}

		a := h.Get(r.Context(), matchID)
		if a == nil {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			baseLog.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.CloseNow()
		conn.SetReadLimit(readLimit)

		connID := uuid.NewString()
		log := baseLog.With(zap.String("match_id", matchID), zap.String("conn_id", connID))

		out := make(chan engine.Event, opts.OutboxSize)
		if !a.Send(r.Context(), arena.Connect{ConnID: connID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "match closed")
			return
		}
		defer a.Send(context.Background(), arena.Leave{ConnID: connID})
		log.Debug("connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go writeLoop(writeCtx, conn, out, log)

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Debug("client closed")
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			cmd, err := protocol.ToCommand(data)
			if err != nil {
				reply := protocol.ErrBadJSON
				if errors.Is(err, protocol.ErrUnknownType) {
					reply = protocol.ErrUnknownType
				}
				ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, protocol.EncodeError(reply))
				cancel()
				continue
			}

			if !a.Send(r.Context(), arena.FromClient{ConnID: connID, Cmd: cmd}) {
				conn.Close(websocket.StatusGoingAway, "match closed")
				return
			}
		}
	}
}

// writeLoop drains out onto the socket. The arena closes out when it drops
// this connection or shuts down, and the socket goes with it.
func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan engine.Event, log *zap.Logger) {
	for ev := range out {
		payload, err := protocol.EncodeEvent(ev)
		if err != nil {
			log.Error("encode event", zap.String("kind", string(ev.Kind())), zap.Error(err))
			continue
		}
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err = conn.Write(wctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			log.Debug("write failed", zap.Error(err))
			conn.CloseNow()
			return
		}
	}
	conn.Close(websocket.StatusGoingAway, "stream closed")
}
