package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
)

func newGadgetID() string { return uuid.NewString() }

func (s *step) shoot(id string, c Shoot) {
	m := s.m
	shooter, ok := m.Players[id]
	if !ok || !shooter.Alive || m.Phase != PhaseAction {
		return
	}
	if c.TargetID != "" {
		s.hit(shooter, c)
	}
	s.emit(Except(id), PlayerShot{
		PlayerID:  id,
		Direction: c.Direction,
		Weapon:    c.Weapon,
	})
}

func (s *step) hit(shooter *Player, c Shoot) {
	m := s.m
	target, ok := m.Players[c.TargetID]
	if !ok || !target.Alive {
		return
	}

	dmg := m.damage(c)
	target.Health = max(0, target.Health-dmg)
	if target.Health > 0 {
		s.emit(Only(target.ID), PlayerHit{Damage: dmg, SourceID: shooter.ID})
		return
	}

	target.Alive = false
	if m.Defuse != nil && m.Defuse.DefuserID == target.ID {
		m.Defuse = nil
	}
	s.emit(All(), PlayerKilled{KillerID: shooter.ID, VictimID: target.ID, Weapon: c.Weapon})
	s.checkRoundEnd()
}

// damage is round(base * multiplier), clamped to [0, MaxInt32]. Base comes
// from the shot if given, then the catalog weapon, then DefaultBaseDamage.
func (m *Match) damage(c Shoot) int {
	base := float64(catalog.DefaultBaseDamage)
	switch {
	case c.BaseDamage != nil:
		base = *c.BaseDamage
	case c.Weapon != "":
		if w, ok := m.catalog.Weapon(c.Weapon); ok {
			base = float64(w.Damage)
		}
	}
	d := base * m.catalog.Multiplier(c.HitLocation)
	if math.IsNaN(d) || d <= 0 {
		return 0
	}
	return int(math.Round(math.Min(d, math.MaxInt32)))
}

func (s *step) useAbility(id string, c UseAbility) {
	p, ok := s.m.Players[id]
	if !ok || !p.Alive {
		return
	}
	s.emit(All(), AbilityUsed{PlayerID: id, OperatorID: p.Operator, Position: c.Position})
}

func (s *step) deployGadget(id string, c DeployGadget) error {
	m := s.m
	p, ok := m.Players[id]
	if !ok || !p.Alive {
		return nil
	}
	if len(m.Gadgets) >= catalog.MaxGadgetsPerRound {
		return ErrGadgetLimit
	}
	g := Gadget{
		ID:       m.newID(),
		Type:     c.Type,
		OwnerID:  id,
		Position: c.Position,
		Active:   true,
	}
	m.Gadgets = append(m.Gadgets, g)
	s.emit(All(), GadgetDeployed{Gadget: g})
	return nil
}
