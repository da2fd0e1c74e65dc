package engine

import "time"

// Command is the closed set of inputs Apply understands.
type Command interface{ isCommand() }

type Join struct {
	Name string
}

type SelectOperator struct {
	OperatorID string
}

type Move struct {
	Position Vec3
	Rotation Vec3
	Stance   Stance
}

// Shoot carries client-reported hit data. TargetID, HitLocation and
// BaseDamage are trusted as sent.
type Shoot struct {
	Direction   Vec3
	Weapon      string
	TargetID    string
	HitLocation string
	BaseDamage  *float64
}

type UseAbility struct {
	Position Vec3
}

type DeployGadget struct {
	Type     string
	Position Vec3
}

type PlantBomb struct{}

type DefuseBomb struct{}

type Disconnect struct{}

// TimerFired feeds a previously scheduled Timer back into the match.
type TimerFired struct {
	Timer Timer
}

func (Join) isCommand()           {}
func (SelectOperator) isCommand() {}
func (Move) isCommand()           {}
func (Shoot) isCommand()          {}
func (UseAbility) isCommand()     {}
func (DeployGadget) isCommand()   {}
func (PlantBomb) isCommand()      {}
func (DefuseBomb) isCommand()     {}
func (Disconnect) isCommand()     {}
func (TimerFired) isCommand()     {}

type TimerKind string

const (
	TimerPhase  TimerKind = "phase"
	TimerBomb   TimerKind = "bomb"
	TimerDefuse TimerKind = "defuse"
)

// Tag identifies what a timer was scheduled for. A fired timer whose tag no
// longer matches the match is discarded.
type Tag struct {
	MatchID string
	Round   int
	Phase   Phase
	Seq     uint64
}

type Timer struct {
	Kind  TimerKind
	Tag   Tag
	After time.Duration
}

func (m *Match) timer(kind TimerKind, after time.Duration) Timer {
	return Timer{
		Kind:  kind,
		Tag:   Tag{MatchID: m.ID, Round: m.Round, Phase: m.Phase, Seq: m.nextSeq()},
		After: after,
	}
}
