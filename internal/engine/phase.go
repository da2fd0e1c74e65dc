package engine

import "time"

// Phase flow:
//
//	lobby -> operator_select -> prep -> action -> round_end -> operator_select (round+1) ...
//
// Every phase but lobby ends on its own timer. Action can also end early via
// elimination or the bomb.

func (s *step) enterPhase(p Phase, d time.Duration) {
	m := s.m
	m.Phase = p
	m.PhaseStartedAt = s.now
	t := m.timer(TimerPhase, d)
	m.phaseSeq = t.Tag.Seq
	s.schedule(t)
}

func (s *step) enterOperatorSelect() {
	m := s.m
	for _, p := range m.Players {
		m.restore(p)
	}
	d := m.catalog.Timings.OperatorSelect
	s.enterPhase(PhaseOperatorSelect, d)
	s.emit(All(), PhaseChanged{
		Phase:      m.Phase,
		Round:      m.Round,
		DurationMs: d.Milliseconds(),
		Operators:  m.catalog.OperatorList(),
	})
}

func (s *step) enterPrep() {
	m := s.m
	m.Gadgets = nil
	m.Bomb = Bomb{}
	m.Defuse = nil
	for _, t := range []Team{TeamDefenders, TeamAttackers} {
		for i, id := range m.roster(t) {
			p, ok := m.Players[id]
			if !ok {
				continue
			}
			p.Position = spawnPoint(t, i)
			p.Rotation = Vec3{}
			m.restore(p)
		}
	}

	d := m.catalog.Timings.Prep
	s.enterPhase(PhasePrep, d)
	s.emit(All(), PhaseChanged{
		Phase:        m.Phase,
		Round:        m.Round,
		DurationMs:   d.Milliseconds(),
		PlayerStates: m.PlayerStates(),
	})
}

func (s *step) enterAction() {
	m := s.m
	d := m.catalog.Timings.Action
	s.enterPhase(PhaseAction, d)
	s.emit(All(), PhaseChanged{
		Phase:      m.Phase,
		Round:      m.Round,
		DurationMs: d.Milliseconds(),
	})
	// A team may have emptied out during prep.
	s.checkRoundEnd()
}

// endRound scores the round at most once and moves to round_end. Only an
// action phase can end.
func (s *step) endRound(winner Team, reason string) {
	m := s.m
	if m.Phase != PhaseAction || m.roundEnded == m.Round {
		return
	}
	m.roundEnded = m.Round
	m.Scores.add(winner)
	m.Defuse = nil

	s.enterPhase(PhaseRoundEnd, m.catalog.Timings.RoundEnd)
	s.emit(All(), RoundEnded{
		Round:  m.Round,
		Winner: winner,
		Scores: m.Scores,
		Reason: reason,
	})
}

func (s *step) nextRound() {
	s.m.Round++
	s.enterOperatorSelect()
}

// checkRoundEnd ends the action phase when a team has nobody left standing.
// A planted bomb keeps the round alive for the attackers to defuse.
func (s *step) checkRoundEnd() {
	m := s.m
	if m.Phase != PhaseAction {
		return
	}
	if !m.anyAlive(TeamAttackers) {
		s.endRound(TeamDefenders, ReasonAttackersEliminated)
		return
	}
	if !m.anyAlive(TeamDefenders) && !m.Bomb.Planted {
		s.endRound(TeamAttackers, ReasonDefendersEliminated)
	}
}

func (s *step) timerFired(t Timer) {
	m := s.m
	if t.Tag.MatchID != m.ID || t.Tag.Round != m.Round || t.Tag.Phase != m.Phase {
		return
	}

	switch t.Kind {
	case TimerPhase:
		if t.Tag.Seq != m.phaseSeq {
			return
		}
		switch m.Phase {
		case PhaseOperatorSelect:
			s.enterPrep()
		case PhasePrep:
			s.enterAction()
		case PhaseAction:
			s.endRound(TeamDefenders, ReasonTimeExpired)
		case PhaseRoundEnd:
			s.nextRound()
		}
	case TimerBomb:
		s.detonate(t.Tag.Seq)
	case TimerDefuse:
		s.completeDefuse(t.Tag.Seq)
	}
}
