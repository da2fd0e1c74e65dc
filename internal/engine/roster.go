package engine

import (
	"slices"
	"strings"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
)

const maxNameLen = 24

func (s *step) join(id string, c Join) error {
	m := s.m
	if _, ok := m.Players[id]; ok {
		return ErrAlreadyJoined
	}
	if len(m.Attackers) >= catalog.TeamSize && len(m.Defenders) >= catalog.TeamSize {
		return ErrMatchFull
	}

	// Ties go to attackers.
	team := TeamAttackers
	if len(m.Attackers) > len(m.Defenders) {
		team = TeamDefenders
	}

	p := &Player{
		ID:     id,
		Name:   playerName(id, c.Name),
		Team:   team,
		Health: catalog.DefaultHealth,
		Armor:  catalog.DefaultArmor,
		Alive:  true,
		Stance: StanceWalk,
	}
	if team == TeamAttackers {
		m.Attackers = append(m.Attackers, id)
	} else {
		m.Defenders = append(m.Defenders, id)
	}
	m.Players[id] = p

	s.emit(Only(id), Joined{Player: *p, MatchID: m.ID})
	s.emit(All(), PlayerJoined{Player: *p})

	if m.NumPlayers() >= 2 && m.Phase == PhaseLobby {
		s.enterOperatorSelect()
	}
	return nil
}

func playerName(id, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName(id)
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return name
}

func (s *step) selectOperator(id string, c SelectOperator) error {
	m := s.m
	p, ok := m.Players[id]
	if !ok {
		return nil
	}
	if m.Phase == PhaseAction || m.Phase == PhaseRoundEnd {
		return ErrSelectionClosed
	}

	op, ok := m.catalog.Operator(c.OperatorID)
	if !ok || op.Team != p.Team {
		return ErrInvalidOperator
	}
	for _, mate := range m.roster(p.Team) {
		if mate == id {
			continue
		}
		if other, ok := m.Players[mate]; ok && other.Operator == op.ID {
			return ErrOperatorTaken
		}
	}

	p.Operator = op.ID
	p.Health = op.Health
	p.Armor = op.Armor

	s.emit(All(), OperatorSelected{PlayerID: id, OperatorID: op.ID})
	return nil
}

func (s *step) move(id string, c Move) {
	m := s.m
	p, ok := m.Players[id]
	if !ok || !p.Alive || m.Phase == PhaseLobby {
		return
	}
	p.Position = c.Position
	p.Rotation = c.Rotation
	p.Stance = ParseStance(string(c.Stance))

	s.emit(Except(id), PlayerMoved{
		PlayerID: id,
		Position: p.Position,
		Rotation: p.Rotation,
		Stance:   p.Stance,
	})
}

// disconnect drops the player from rosters and state. Pending timers are left
// alone; they check current membership when they fire.
func (s *step) disconnect(id string) {
	m := s.m
	if _, ok := m.Players[id]; !ok {
		return
	}
	isID := func(pid string) bool { return pid == id }
	m.Attackers = slices.DeleteFunc(m.Attackers, isID)
	m.Defenders = slices.DeleteFunc(m.Defenders, isID)
	delete(m.Players, id)
	if m.Defuse != nil && m.Defuse.DefuserID == id {
		m.Defuse = nil
	}

	s.emit(All(), PlayerLeft{PlayerID: id})

	if m.NumPlayers() == 0 {
		s.resetToLobby()
		return
	}
	s.checkRoundEnd()
}

// resetToLobby parks an empty match. Round and scores are kept, but the round
// counts as unscored so the next action phase can end.
func (s *step) resetToLobby() {
	m := s.m
	m.Phase = PhaseLobby
	m.PhaseStartedAt = s.now
	m.phaseSeq = 0
	m.roundEnded = 0
	m.Gadgets = nil
	m.Bomb = Bomb{}
	m.Defuse = nil
}

// restore puts a player back to full strength for their operator.
func (m *Match) restore(p *Player) {
	p.Health = catalog.DefaultHealth
	p.Armor = catalog.DefaultArmor
	if op, ok := m.catalog.Operator(p.Operator); ok {
		p.Health = op.Health
		p.Armor = op.Armor
	}
	p.Alive = true
}
