package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/breach-backend/internal/arena"
	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/hub"
	"github.com/DoyleJ11/breach-backend/internal/store"
)

type fakeRounds struct {
	rounds []store.RoundResult
	err    error
	gotID  string
	gotLim int
}

func (f *fakeRounds) RecentRounds(_ context.Context, matchID string, limit int) ([]store.RoundResult, error) {
	f.gotID, f.gotLim = matchID, limit
	return f.rounds, f.err
}

func newRouter(t *testing.T, rounds RoundLister) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	log := zaptest.NewLogger(t)
	cat := catalog.Default()
	h := hub.NewHub(ctx, func(ctx context.Context, id string) *arena.Arena {
		return arena.New(ctx, id, cat, arena.WithLogger(log))
	}, log)
	require.NotNil(t, h.Ensure(ctx, "match_1"))
	return SetupRoutes(Deps{
		Hub:          h,
		Catalog:      cat,
		Rounds:       rounds,
		DefaultMatch: "match_1",
		Log:          log,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
	}
}

func TestHealthz(t *testing.T) {
	rec := do(t, newRouter(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateMatchGeneratesCode(t *testing.T) {
	r := newRouter(t, nil)
	rec := do(t, r, http.MethodPost, "/matches", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[map[string]string](t, rec)["id"]
	assert.Len(t, id, 6)

	rec = do(t, r, http.MethodGet, "/matches/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[MatchDetail](t, rec)
	assert.Equal(t, id, detail.ID)
	assert.Equal(t, "lobby", string(detail.Phase))
	assert.Equal(t, 1, detail.Round)
	assert.Zero(t, detail.Players)
}

func TestCreateMatchWithID(t *testing.T) {
	r := newRouter(t, nil)
	cases := []struct {
		name string
		body string
		want int
	}{
		{"new id", `{"id":"scrim"}`, http.StatusCreated},
		{"taken id", `{"id":"scrim"}`, http.StatusConflict},
		{"default is taken", `{"id":"match_1"}`, http.StatusConflict},
		{"invalid id", `{"id":"no spaces!"}`, http.StatusBadRequest},
		{"wrong field type", `{"id":12}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/matches", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestListMatches(t *testing.T) {
	r := newRouter(t, nil)
	do(t, r, http.MethodPost, "/matches", `{"id":"alpha"}`)

	rec := do(t, r, http.MethodGet, "/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]MatchSummary](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].ID)
	assert.Equal(t, "match_1", list[1].ID)
}

func TestGetUnknownMatch(t *testing.T) {
	rec := do(t, newRouter(t, nil), http.MethodGet, "/matches/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMatch(t *testing.T) {
	r := newRouter(t, nil)
	do(t, r, http.MethodPost, "/matches", `{"id":"temp"}`)

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/matches/match_1", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/matches/temp", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/matches/temp", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/matches/temp", "").Code)
}

func TestGetCatalog(t *testing.T) {
	rec := do(t, newRouter(t, nil), http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[catalogResponse](t, rec)
	assert.Equal(t, catalog.DefaultVersion, body.Version)
	assert.Len(t, body.Operators, 10)
	assert.Len(t, body.Weapons, 13)
	assert.Equal(t, 4.0, body.Multipliers.Head)
	assert.Equal(t, int64(45000), body.TimingsMs.Prep)
	assert.Equal(t, int64(7000), body.TimingsMs.Defuse)
}

func TestListRounds(t *testing.T) {
	t.Run("archive disabled", func(t *testing.T) {
		rec := do(t, newRouter(t, nil), http.MethodGet, "/matches/match_1/rounds", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("lists rounds", func(t *testing.T) {
		fr := &fakeRounds{rounds: []store.RoundResult{{MatchID: "match_1", Round: 3, Winner: "attackers"}}}
		rec := do(t, newRouter(t, fr), http.MethodGet, "/matches/match_1/rounds?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]store.RoundResult](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].Round)
		assert.Equal(t, "match_1", fr.gotID)
		assert.Equal(t, 5, fr.gotLim)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := do(t, newRouter(t, &fakeRounds{}), http.MethodGet, "/matches/match_1/rounds?limit=0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		rec := do(t, newRouter(t, &fakeRounds{err: errors.New("down")}), http.MethodGet, "/matches/match_1/rounds", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
