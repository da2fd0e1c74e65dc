package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/breach-backend/internal/arena"
	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/hub"
	"github.com/DoyleJ11/breach-backend/internal/protocol"
	"github.com/DoyleJ11/breach-backend/internal/session"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zaptest.NewLogger(t)
	cat := catalog.Default()
	sessions := session.NewDirectory()
	h := hub.NewHub(ctx, func(ctx context.Context, id string) *arena.Arena {
		return arena.New(ctx, id, cat, arena.WithLogger(log), arena.WithSessions(sessions))
	}, log)
	require.NotNil(t, h.Ensure(ctx, "match_1"))

	srv := httptest.NewServer(Handler(h, Options{DefaultMatch: "match_1", Log: log}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(frame)))
}

// readKind reads frames until one of the given kind arrives.
func readKind(t *testing.T, conn *websocket.Conn, kind string) protocol.Envelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err, "waiting for %s", kind)
		var env protocol.Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		if env.T == kind {
			return env
		}
	}
}

func TestHandler_TwoPlayersReachOperatorSelect(t *testing.T) {
	srv := newServer(t)
	c1 := dial(t, srv, "/")
	c2 := dial(t, srv, "/?match=match_1")

	send(t, c1, `{"t":"join_game","p":{"name":"Ash"}}`)
	env := readKind(t, c1, "joined_game")
	var joined struct {
		Player struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Team string `json:"team"`
		} `json:"player"`
		MatchID string `json:"matchId"`
	}
	require.NoError(t, json.Unmarshal(env.P, &joined))
	assert.Equal(t, "Ash", joined.Player.Name)
	assert.Equal(t, "attackers", joined.Player.Team)
	assert.Equal(t, "match_1", joined.MatchID)
	assert.NotEmpty(t, joined.Player.ID)

	send(t, c2, `{"t":"join_game","p":{"name":"Mute"}}`)
	for _, c := range []*websocket.Conn{c1, c2} {
		env := readKind(t, c, "phase_change")
		var pc struct {
			Phase     string            `json:"phase"`
			Round     int               `json:"round"`
			Operators []json.RawMessage `json:"operators"`
		}
		require.NoError(t, json.Unmarshal(env.P, &pc))
		assert.Equal(t, "operator_select", pc.Phase)
		assert.Equal(t, 1, pc.Round)
		assert.Len(t, pc.Operators, 10)
	}

	send(t, c2, `{"t":"select_operator","p":"TRAPMASTER"}`)
	env = readKind(t, c1, "operator_selected")
	assert.Contains(t, string(env.P), `"operatorId":"trapmaster"`)

	require.NoError(t, c2.Close(websocket.StatusNormalClosure, "bye"))
	env = readKind(t, c1, "player_left")
	assert.Contains(t, string(env.P), "playerId")
}

func TestHandler_DecodeErrors(t *testing.T) {
	srv := newServer(t)
	c := dial(t, srv, "/")

	send(t, c, `not json`)
	env := readKind(t, c, "error")
	assert.JSONEq(t, `{"message":"bad json"}`, string(env.P))

	send(t, c, `{"t":"teleport"}`)
	env = readKind(t, c, "error")
	assert.JSONEq(t, `{"message":"unknown type"}`, string(env.P))
}

func TestHandler_UnknownMatch(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/?match=nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
