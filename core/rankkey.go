package core

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"
)

// A RankKey orders players by their statistics.
//
// More goals rank higher. On equal goals fewer cards rank higher
// and the remaining ties are broken by the higher player ID.
// The greatest RankKey therefore belongs to the best player.
type RankKey struct {
	Goals int
	Cards int
	ID    int
}

// Returns a negative number when k ranks below o, zero when they are
// equal and a positive number when k ranks above o.
func (k RankKey) Compare(o RankKey) int {
	if c := cmp.Compare(k.Goals, o.Goals); c != 0 {
		return c
	}
	// Cards count against the player
	if c := cmp.Compare(o.Cards, k.Cards); c != 0 {
		return c
	}
	return cmp.Compare(k.ID, o.ID)
}

func (k RankKey) Less(o RankKey) bool {
	return k.Compare(o) < 0
}

// Returns the key of a or b that is closer to k.
//
// Closeness is decided by the goal difference first, then by the
// card difference and then by the ID difference. When a and b are
// equally close in all three the one with the higher ID is returned.
// A nil key is never closer than a present one. Returns false when
// both are nil.
func (k RankKey) Closest(a, b *RankKey) (RankKey, bool) {
	switch {
	case a == nil && b == nil:
		return RankKey{}, false
	case a == nil:
		return *b, true
	case b == nil:
		return *a, true
	}

	distances := [][2]int{
		{absDiff(k.Goals, a.Goals), absDiff(k.Goals, b.Goals)},
		{absDiff(k.Cards, a.Cards), absDiff(k.Cards, b.Cards)},
		{absDiff(k.ID, a.ID), absDiff(k.ID, b.ID)},
	}
	for _, d := range distances {
		if d[0] < d[1] {
			return *a, true
		}
		if d[1] < d[0] {
			return *b, true
		}
	}

	if a.ID > b.ID {
		return *a, true
	}
	return *b, true
}

func (k RankKey) String() string {
	return fmt.Sprintf("#%d (%d goals, %d cards)", k.ID, k.Goals, k.Cards)
}

func absDiff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
