package httpapi

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/DoyleJ11/breach-backend/internal/arena"
	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/engine"
	"github.com/DoyleJ11/breach-backend/internal/hub"
)

const maxCodeAttempts = 8

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type MatchSummary struct {
	ID      string        `json:"id"`
	Phase   engine.Phase  `json:"phase"`
	Round   int           `json:"round"`
	Players int           `json:"players"`
	Scores  engine.Scores `json:"scores"`
}

type MatchDetail struct {
	MatchSummary
	Clients     int             `json:"clients"`
	PlayerList  []engine.Player `json:"playerList"`
	BombPlanted bool            `json:"bombPlanted"`
	Gadgets     int             `json:"gadgets"`
}

func summarize(v arena.View) MatchSummary {
	return MatchSummary{
		ID:      v.Match.ID,
		Phase:   v.Match.Phase,
		Round:   v.Match.Round,
		Players: v.Match.NumPlayers(),
		Scores:  v.Match.Scores,
	}
}

// CreateMatch starts a match. The body may name it ({"id": "..."}); otherwise
// a six character code is generated.
func CreateMatch(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		if body.ID != "" {
			if !validID.MatchString(body.ID) {
				writeError(w, http.StatusBadRequest, "invalid match id")
				return
			}
			if h.Create(r.Context(), body.ID) == nil {
				writeError(w, http.StatusConflict, "match already exists")
				return
			}
			writeJSON(w, http.StatusCreated, map[string]string{"id": body.ID})
			return
		}

		for range maxCodeAttempts {
			code, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			if h.Create(r.Context(), code) != nil {
				writeJSON(w, http.StatusCreated, map[string]string{"id": code})
				return
			}
		}
		writeError(w, http.StatusInternalServerError, "failed to create match")
	}
}

func ListMatches(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []MatchSummary{}
		for _, a := range h.List(r.Context()) {
			v, ok := a.State(r.Context())
			if !ok {
				continue // stopped between listing and asking
			}
			out = append(out, summarize(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetMatch(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := h.Get(r.Context(), chi.URLParam(r, "id"))
		if a == nil {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		v, ok := a.State(r.Context())
		if !ok {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeJSON(w, http.StatusOK, MatchDetail{
			MatchSummary: summarize(v),
			Clients:      v.NumClients,
			PlayerList:   v.Match.PlayerStates(),
			BombPlanted:  v.Match.Bomb.Planted,
			Gadgets:      len(v.Match.Gadgets),
		})
	}
}

// DeleteMatch stops a match. The default match always stays up.
func DeleteMatch(h *hub.Hub, defaultMatch string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == defaultMatch {
			writeError(w, http.StatusConflict, "default match cannot be removed")
			return
		}
		if !h.Remove(r.Context(), id) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListRounds(rounds RoundLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rounds == nil {
			writeError(w, http.StatusServiceUnavailable, "round archive disabled")
			return
		}
		limit := 20
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 100 {
				writeError(w, http.StatusBadRequest, "limit must be 1-100")
				return
			}
			limit = n
		}
		out, err := rounds.RecentRounds(r.Context(), chi.URLParam(r, "id"), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to read rounds")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type catalogTimings struct {
	OperatorSelect int64 `json:"operatorSelect"`
	Prep           int64 `json:"prep"`
	Action         int64 `json:"action"`
	RoundEnd       int64 `json:"roundEnd"`
	Bomb           int64 `json:"bomb"`
	Defuse         int64 `json:"defuse"`
}

type catalogResponse struct {
	Version     string                 `json:"version"`
	Operators   []catalog.Operator     `json:"operators"`
	Weapons     []catalog.Weapon       `json:"weapons"`
	Multipliers catalog.HitMultipliers `json:"hitMultipliers"`
	Movement    catalog.Movement       `json:"movement"`
	Vision      catalog.Vision         `json:"vision"`
	TimingsMs   catalogTimings         `json:"timingsMs"`
}

func GetCatalog(c *catalog.Catalog) http.HandlerFunc {
	t := c.Timings
	resp := catalogResponse{
		Version:     c.Version,
		Operators:   c.OperatorList(),
		Weapons:     c.WeaponList(),
		Multipliers: c.Multipliers,
		Movement:    c.Movement,
		Vision:      c.Vision,
		TimingsMs: catalogTimings{
			OperatorSelect: t.OperatorSelect.Milliseconds(),
			Prep:           t.Prep.Milliseconds(),
			Action:         t.Action.Milliseconds(),
			RoundEnd:       t.RoundEnd.Milliseconds(),
			Bomb:           t.Bomb.Milliseconds(),
			Defuse:         t.Defuse.Milliseconds(),
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
