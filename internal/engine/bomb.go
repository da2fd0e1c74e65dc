package engine

// Defenders plant, attackers defuse. A planted bomb detonates after
// Timings.Bomb unless a defuse completes first.

func (s *step) plant(id string) error {
	m := s.m
	p, ok := m.Players[id]
	if !ok {
		return nil
	}
	if p.Team != TeamDefenders {
		return ErrWrongTeam
	}
	if !p.Alive || m.Phase != PhaseAction || m.Bomb.Planted {
		return nil
	}

	site := p.Position
	t := m.timer(TimerBomb, m.catalog.Timings.Bomb)
	m.Bomb = Bomb{
		Planted:   true,
		Site:      &site,
		PlantedAt: s.now,
		PlanterID: id,
		seq:       t.Tag.Seq,
	}
	s.emit(All(), BombPlanted{Position: site, PlanterID: id})
	s.schedule(t)
	return nil
}

func (s *step) defuse(id string) error {
	m := s.m
	p, ok := m.Players[id]
	if !ok {
		return nil
	}
	if p.Team != TeamAttackers {
		return ErrWrongTeam
	}
	if !p.Alive || m.Phase != PhaseAction || !m.Bomb.Planted {
		return nil
	}
	if m.Defuse != nil {
		return ErrDefuseInProgress
	}

	t := m.timer(TimerDefuse, m.catalog.Timings.Defuse)
	m.Defuse = &Defuse{DefuserID: id, StartedAt: s.now, seq: t.Tag.Seq}
	s.emit(All(), DefuseStarted{DefuserID: id})
	s.schedule(t)
	return nil
}

func (s *step) detonate(seq uint64) {
	m := s.m
	if !m.Bomb.Planted || m.Bomb.seq != seq {
		return
	}
	s.endRound(TeamDefenders, ReasonBombExploded)
}

// completeDefuse succeeds only if the same defuse is still in flight and the
// defuser is still alive in the match.
func (s *step) completeDefuse(seq uint64) {
	m := s.m
	d := m.Defuse
	if d == nil || d.seq != seq || !m.Bomb.Planted {
		return
	}
	if p, ok := m.Players[d.DefuserID]; !ok || !p.Alive {
		m.Defuse = nil
		return
	}
	m.Bomb = Bomb{}
	m.Defuse = nil
	s.endRound(TeamAttackers, ReasonBombDefused)
}
