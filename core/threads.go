package core

// Links the player between its predecessor and successor in the
// league ranking. The player has to be in the ranking already.
func (l *League) linkPlayer(p *Player) {
	key := p.RankKey()

	_, pred, ok := l.ranking.Predecessor(key)
	p.prev = pred
	if ok {
		pred.next = p
	}

	_, succ, ok := l.ranking.Successor(key)
	p.next = succ
	if ok {
		succ.prev = p
	}
}

// Bridges the gap that the player leaves in the ranking thread
func unlinkPlayer(p *Player) {
	if p.prev != nil {
		p.prev.next = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	}
	p.prev = nil
	p.next = nil
}

// Adds or removes the roster from the eligible rosters when
// its eligibility changed.
func (l *League) syncEligibility(r *Roster) {
	listed := l.eligible.Contains(r.id)
	eligible := l.isEligible(r)

	switch {
	case eligible && !listed:
		l.linkEligible(r)
	case !eligible && listed:
		l.unlinkEligible(r)
	default:
		return
	}

	l.logger.Debug("roster eligibility changed", "roster", r.id, "eligible", eligible)
}

func (l *League) linkEligible(r *Roster) {
	check(l.eligible.Insert(r.id, r))

	if _, pred, ok := l.eligible.Predecessor(r.id); ok {
		pred.nextEligible = r
	}
	_, succ, _ := l.eligible.Successor(r.id)
	r.nextEligible = succ
}

func (l *League) unlinkEligible(r *Roster) {
	if _, pred, ok := l.eligible.Predecessor(r.id); ok {
		pred.nextEligible = r.nextEligible
	}
	check(l.eligible.Remove(r.id))
	r.nextEligible = nil
}
