package engine

import (
	"errors"
	"time"
)

// Validation errors. They are reported to the acting connection only and
// never change state.
var (
	ErrInvalidOperator    = errors.New("invalid operator selection")
	ErrOperatorTaken      = errors.New("operator already selected")
	ErrSelectionClosed    = errors.New("operator selection is closed")
	ErrWrongTeam          = errors.New("wrong team for this action")
	ErrMatchFull          = errors.New("match is full")
	ErrAlreadyJoined      = errors.New("already joined")
	ErrDefuseInProgress   = errors.New("defuse already in progress")
	ErrGadgetLimit        = errors.New("gadget limit reached")
	ErrUnsupportedCommand = errors.New("unsupported command")
)

const (
	ReasonTimeExpired         = "time expired"
	ReasonAttackersEliminated = "attackers eliminated"
	ReasonDefendersEliminated = "defenders eliminated"
	ReasonBombExploded        = "bomb exploded"
	ReasonBombDefused         = "bomb defused"
)

/*
	Join           -> Joined (to joiner) -> PlayerJoined -> [PhaseChanged(operator_select)]
	SelectOperator -> OperatorSelected
	Move           -> PlayerMoved (not echoed)
	Shoot          -> [PlayerHit (to victim) | PlayerKilled -> [RoundEnded]] -> PlayerShot (not echoed)
	PlantBomb      -> BombPlanted + bomb timer
	DefuseBomb     -> DefuseStarted + defuse timer
	TimerFired     -> whatever the tagged transition produces, or nothing when stale
*/

// Apply runs one command against m on behalf of actor (the connection/player
// id; empty for timers). It returns the events to deliver and the timers to
// schedule. A non-nil error means m was not changed.
//
// Commands from unknown actors and timers whose tag no longer matches are
// dropped silently: those are races, not client mistakes.
func Apply(m *Match, actor string, cmd Command, now time.Time) ([]Event, []Timer, error) {
	s := &step{m: m, now: now}

	var err error
	switch c := cmd.(type) {
	case Join:
		err = s.join(actor, c)
	case SelectOperator:
		err = s.selectOperator(actor, c)
	case Move:
		s.move(actor, c)
	case Shoot:
		s.shoot(actor, c)
	case UseAbility:
		s.useAbility(actor, c)
	case DeployGadget:
		err = s.deployGadget(actor, c)
	case PlantBomb:
		err = s.plant(actor)
	case DefuseBomb:
		err = s.defuse(actor)
	case Disconnect:
		s.disconnect(actor)
	case TimerFired:
		s.timerFired(c.Timer)
	default:
		err = ErrUnsupportedCommand
	}
	if err != nil {
		return nil, nil, err
	}
	return s.events, s.timers, nil
}

// step collects the output of a single Apply call.
type step struct {
	m      *Match
	now    time.Time
	events []Event
	timers []Timer
}

func (s *step) emit(to Audience, p Payload) {
	s.events = append(s.events, Event{To: to, Payload: p})
}

func (s *step) schedule(t Timer) {
	s.timers = append(s.timers, t)
}
