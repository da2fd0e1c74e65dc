package engine

import (
	"fmt"
	"time"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
)

type Team = catalog.Team

const (
	TeamAttackers = catalog.Attackers
	TeamDefenders = catalog.Defenders
)

type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseOperatorSelect Phase = "operator_select"
	PhasePrep           Phase = "prep"
	PhaseAction         Phase = "action"
	PhaseRoundEnd       Phase = "round_end"
)

type Stance string

const (
	StanceWalk   Stance = "walk"
	StanceCrouch Stance = "crouch"
	StanceSprint Stance = "sprint"
)

// ParseStance maps unknown stances to walk.
func ParseStance(s string) Stance {
	switch Stance(s) {
	case StanceCrouch, StanceSprint:
		return Stance(s)
	default:
		return StanceWalk
	}
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     Team   `json:"team"`
	Operator string `json:"operator,omitempty"`
	Health   int    `json:"health"`
	Armor    int    `json:"armor"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Alive    bool   `json:"alive"`
	Stance   Stance `json:"stance"`
}

type Gadget struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	OwnerID  string `json:"ownerId"`
	Position Vec3   `json:"position"`
	Active   bool   `json:"active"`
}

type Bomb struct {
	Planted   bool      `json:"planted"`
	Site      *Vec3     `json:"site,omitempty"`
	PlantedAt time.Time `json:"plantedAt,omitempty"`
	PlanterID string    `json:"planterId,omitempty"`
	seq       uint64
}

// Defuse is the single defuse in flight for the planted bomb.
type Defuse struct {
	DefuserID string
	StartedAt time.Time
	seq       uint64
}

type Scores struct {
	Attackers int `json:"attackers"`
	Defenders int `json:"defenders"`
}

func (s *Scores) add(t Team) {
	switch t {
	case TeamAttackers:
		s.Attackers++
	case TeamDefenders:
		s.Defenders++
	}
}

// Match is the mutable state of one match. It is owned by exactly one arena
// goroutine and must never be shared.
type Match struct {
	ID             string
	Phase          Phase
	Round          int
	Attackers      []string
	Defenders      []string
	Players        map[string]*Player
	Gadgets        []Gadget
	Bomb           Bomb
	Defuse         *Defuse
	PhaseStartedAt time.Time
	Scores         Scores

	catalog    *catalog.Catalog
	phaseSeq   uint64
	lastSeq    uint64
	roundEnded int
	newID      func() string
}

func NewMatch(id string, cat *catalog.Catalog, now time.Time) *Match {
	return &Match{
		ID:             id,
		Phase:          PhaseLobby,
		Round:          1,
		Attackers:      []string{},
		Defenders:      []string{},
		Players:        make(map[string]*Player),
		PhaseStartedAt: now,
		catalog:        cat,
		newID:          newGadgetID,
	}
}

func (m *Match) Catalog() *catalog.Catalog { return m.catalog }

func (m *Match) NumPlayers() int { return len(m.Attackers) + len(m.Defenders) }

func (m *Match) roster(t Team) []string {
	if t == TeamAttackers {
		return m.Attackers
	}
	return m.Defenders
}

func (m *Match) anyAlive(t Team) bool {
	for _, id := range m.roster(t) {
		if p, ok := m.Players[id]; ok && p.Alive {
			return true
		}
	}
	return false
}

func (m *Match) nextSeq() uint64 {
	m.lastSeq++
	return m.lastSeq
}

// PlayerStates returns copies of every player in roster order, attackers first.
func (m *Match) PlayerStates() []Player {
	out := make([]Player, 0, m.NumPlayers())
	for _, t := range []Team{TeamAttackers, TeamDefenders} {
		for _, id := range m.roster(t) {
			if p, ok := m.Players[id]; ok {
				out = append(out, *p)
			}
		}
	}
	return out
}

// Clone returns a deep copy that can safely leave the arena goroutine.
func (m *Match) Clone() Match {
	cp := *m
	cp.Attackers = append([]string{}, m.Attackers...)
	cp.Defenders = append([]string{}, m.Defenders...)
	cp.Gadgets = append([]Gadget(nil), m.Gadgets...)
	cp.Players = make(map[string]*Player, len(m.Players))
	for id, p := range m.Players {
		pc := *p
		cp.Players[id] = &pc
	}
	if m.Bomb.Site != nil {
		site := *m.Bomb.Site
		cp.Bomb.Site = &site
	}
	if m.Defuse != nil {
		d := *m.Defuse
		cp.Defuse = &d
	}
	return cp
}

func defaultName(id string) string {
	short := id
	if len(short) > 4 {
		short = short[:4]
	}
	return fmt.Sprintf("Player_%s", short)
}
