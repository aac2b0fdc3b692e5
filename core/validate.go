package core

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"
)

var ErrInconsistent = errors.New("league state is inconsistent")

// Checks that the derived structures of the league agree with its
// indexes: the ranking thread follows the ranking, the eligible
// rosters and their thread are exactly the rosters that meet the
// eligibility rules and the league's top scorer is the best player.
func (l *League) Validate() error {
	for name, err := range map[string]error{
		"players":  l.players.Validate(),
		"ranking":  l.ranking.Validate(),
		"rosters":  l.rosters.Validate(),
		"eligible": l.eligible.Validate(),
	} {
		if err != nil {
			return fmt.Errorf("%s index: %w", name, err)
		}
	}

	if l.players.Len() != l.ranking.Len() {
		return fmt.Errorf("%w: %d players but %d ranked", ErrInconsistent, l.players.Len(), l.ranking.Len())
	}

	if err := l.validateRankingThread(); err != nil {
		return err
	}
	if err := l.validateRosters(); err != nil {
		return err
	}
	return l.validateEligibleThread()
}

func (l *League) validateRankingThread() error {
	_, cursor, _ := l.ranking.Min()
	var prev *Player
	for key, p := range l.ranking.All() {
		if cursor != p {
			return fmt.Errorf("%w: ranking thread skips %v", ErrInconsistent, key)
		}
		if p.prev != prev {
			return fmt.Errorf("%w: %v links back to the wrong player", ErrInconsistent, key)
		}
		prev, cursor = p, p.next
	}
	if cursor != nil {
		return fmt.Errorf("%w: ranking thread continues after the best player", ErrInconsistent)
	}

	_, best, _ := l.ranking.Max()
	if l.topScorer != best {
		return fmt.Errorf("%w: cached top scorer is not the best player", ErrInconsistent)
	}
	return nil
}

func (l *League) validateRosters() error {
	total := 0
	for id, r := range l.rosters.All() {
		if r.byId.Len() != r.byRank.Len() {
			return fmt.Errorf("%w: roster %d indexes differ in size", ErrInconsistent, id)
		}

		goals, cards, goalkeepers := 0, 0, 0
		for _, p := range r.byId.All() {
			if p.roster != r || p.teamId != id {
				return fmt.Errorf("%w: player %d does not point to roster %d", ErrInconsistent, p.id, id)
			}
			if _, ok := r.byRank.Get(p.RankKey()); !ok {
				return fmt.Errorf("%w: player %d is not ranked in roster %d", ErrInconsistent, p.id, id)
			}
			goals += p.goals
			cards += p.cards
			if p.goalkeeper {
				goalkeepers += 1
			}
		}
		if goals != r.goals || cards != r.cards || goalkeepers != r.goalkeepers {
			return fmt.Errorf("%w: roster %d totals are off", ErrInconsistent, id)
		}

		if l.isEligible(r) != l.eligible.Contains(id) {
			return fmt.Errorf("%w: roster %d eligibility is not tracked", ErrInconsistent, id)
		}
		total += r.Size()
	}

	if total != l.players.Len() {
		return fmt.Errorf("%w: rosters hold %d of %d players", ErrInconsistent, total, l.players.Len())
	}
	return nil
}

func (l *League) validateEligibleThread() error {
	_, cursor, _ := l.eligible.Min()
	for id, r := range l.eligible.All() {
		if cursor != r {
			return fmt.Errorf("%w: eligible thread skips roster %d", ErrInconsistent, id)
		}
		cursor = r.nextEligible
	}
	if cursor != nil {
		return fmt.Errorf("%w: eligible thread continues after the last roster", ErrInconsistent)
	}
	return nil
}

// Returns a printable view of the league ranking tree
func (l *League) RankingTree() treeprint.Tree {
	return l.ranking.Tree()
}
