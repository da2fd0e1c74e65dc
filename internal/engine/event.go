package engine

import (
	"github.com/DoyleJ11/breach-backend/internal/catalog"
)

type EventKind string

const (
	EvtJoined           EventKind = "joined_game"
	EvtPlayerJoined     EventKind = "player_joined"
	EvtPhaseChanged     EventKind = "phase_change"
	EvtOperatorSelected EventKind = "operator_selected"
	EvtPlayerMoved      EventKind = "player_moved"
	EvtPlayerShot       EventKind = "player_shot"
	EvtPlayerHit        EventKind = "player_hit"
	EvtPlayerKilled     EventKind = "player_killed"
	EvtAbilityUsed      EventKind = "ability_used"
	EvtGadgetDeployed   EventKind = "gadget_deployed"
	EvtBombPlanted      EventKind = "bomb_planted"
	EvtDefuseStarted    EventKind = "defuse_started"
	EvtRoundEnd         EventKind = "round_end"
	EvtPlayerLeft       EventKind = "player_left"
	EvtError            EventKind = "error"
)

// Payload is the closed set of outbound messages. Payloads hold copies only,
// never pointers into Match, so they can be encoded off the arena goroutine.
type Payload interface {
	Kind() EventKind
	isPayload()
}

type AudienceMode int

const (
	ToAll AudienceMode = iota
	ToOne
	ToAllExcept
)

type Audience struct {
	Mode     AudienceMode
	PlayerID string
}

func All() Audience                   { return Audience{Mode: ToAll} }
func Only(playerID string) Audience   { return Audience{Mode: ToOne, PlayerID: playerID} }
func Except(playerID string) Audience { return Audience{Mode: ToAllExcept, PlayerID: playerID} }

type Event struct {
	To      Audience
	Payload Payload
}

func (e Event) Kind() EventKind { return e.Payload.Kind() }

type Joined struct {
	Player  Player `json:"player"`
	MatchID string `json:"matchId"`
}

// PlayerJoined is sent flat, as the player object itself.
type PlayerJoined struct {
	Player
}

type PhaseChanged struct {
	Phase        Phase              `json:"phase"`
	Round        int                `json:"round"`
	DurationMs   int64              `json:"duration,omitempty"`
	Operators    []catalog.Operator `json:"operators,omitempty"`
	PlayerStates []Player           `json:"playerStates,omitempty"`
}

type OperatorSelected struct {
	PlayerID   string `json:"playerId"`
	OperatorID string `json:"operatorId"`
}

type PlayerMoved struct {
	PlayerID string `json:"playerId"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Stance   Stance `json:"stance"`
}

type PlayerShot struct {
	PlayerID  string `json:"playerId"`
	Direction Vec3   `json:"direction"`
	Weapon    string `json:"weapon"`
}

type PlayerHit struct {
	Damage   int    `json:"damage"`
	SourceID string `json:"from"`
}

type PlayerKilled struct {
	KillerID string `json:"killerId"`
	VictimID string `json:"victimId"`
	Weapon   string `json:"weapon"`
}

type AbilityUsed struct {
	PlayerID   string `json:"playerId"`
	OperatorID string `json:"operator"`
	Position   Vec3   `json:"position"`
}

type GadgetDeployed struct {
	Gadget
}

type BombPlanted struct {
	Position  Vec3   `json:"position"`
	PlanterID string `json:"planterId"`
}

type DefuseStarted struct {
	DefuserID string `json:"defuserId"`
}

type RoundEnded struct {
	Round  int    `json:"round"`
	Winner Team   `json:"winner"`
	Scores Scores `json:"scores"`
	Reason string `json:"reason"`
}

type PlayerLeft struct {
	PlayerID string `json:"playerId"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func (Joined) Kind() EventKind           { return EvtJoined }
func (PlayerJoined) Kind() EventKind     { return EvtPlayerJoined }
func (PhaseChanged) Kind() EventKind     { return EvtPhaseChanged }
func (OperatorSelected) Kind() EventKind { return EvtOperatorSelected }
func (PlayerMoved) Kind() EventKind      { return EvtPlayerMoved }
func (PlayerShot) Kind() EventKind       { return EvtPlayerShot }
func (PlayerHit) Kind() EventKind        { return EvtPlayerHit }
func (PlayerKilled) Kind() EventKind     { return EvtPlayerKilled }
func (AbilityUsed) Kind() EventKind      { return EvtAbilityUsed }
func (GadgetDeployed) Kind() EventKind   { return EvtGadgetDeployed }
func (BombPlanted) Kind() EventKind      { return EvtBombPlanted }
func (DefuseStarted) Kind() EventKind    { return EvtDefuseStarted }
func (RoundEnded) Kind() EventKind       { return EvtRoundEnd }
func (PlayerLeft) Kind() EventKind       { return EvtPlayerLeft }
func (ErrorMessage) Kind() EventKind     { return EvtError }

func (Joined) isPayload()           {}
func (PlayerJoined) isPayload()     {}
func (PhaseChanged) isPayload()     {}
func (OperatorSelected) isPayload() {}
func (PlayerMoved) isPayload()      {}
func (PlayerShot) isPayload()       {}
func (PlayerHit) isPayload()        {}
func (PlayerKilled) isPayload()     {}
func (AbilityUsed) isPayload()      {}
func (GadgetDeployed) isPayload()   {}
func (BombPlanted) isPayload()      {}
func (DefuseStarted) isPayload()    {}
func (RoundEnded) isPayload()       {}
func (PlayerLeft) isPayload()       {}
func (ErrorMessage) isPayload()     {}

func ContainsEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind() == kind {
			return true
		}
	}
	return false
}

// FindEvent returns the first payload of type T in events.
func FindEvent[T Payload](events []Event) (T, bool) {
	for _, ev := range events {
		if p, ok := ev.Payload.(T); ok {
			return p, true
		}
	}
	var zero T
	return zero, false
}
