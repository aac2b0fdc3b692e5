package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankKeyOrder(t *testing.T) {
	assert := assert.New(t)

	a := RankKey{Goals: 5, Cards: 0, ID: 10}
	b := RankKey{Goals: 5, Cards: 1, ID: 11}
	c := RankKey{Goals: 6, Cards: 9, ID: 1}
	d := RankKey{Goals: 5, Cards: 0, ID: 12}

	assert.Positive(a.Compare(b), "fewer cards did not rank higher")
	assert.Positive(c.Compare(a), "more goals did not rank higher")
	assert.Positive(d.Compare(a), "higher id did not break the tie")
	assert.Zero(a.Compare(a))
	assert.True(b.Less(a))

	keys := []RankKey{c, b, d, a}
	slices.SortFunc(keys, RankKey.Compare)
	assert.Equal([]RankKey{b, a, d, c}, keys)
}

func TestClosest(t *testing.T) {
	require := require.New(t)

	k := RankKey{Goals: 5, Cards: 2, ID: 20}

	_, ok := k.Closest(nil, nil)
	require.False(ok)

	only := RankKey{Goals: 50, Cards: 0, ID: 1}
	closest, ok := k.Closest(&only, nil)
	require.True(ok)
	require.Equal(only, closest)
	closest, _ = k.Closest(nil, &only)
	require.Equal(only, closest)

	// Goals decide first
	a := RankKey{Goals: 4, Cards: 9, ID: 100}
	b := RankKey{Goals: 7, Cards: 2, ID: 21}
	closest, _ = k.Closest(&a, &b)
	require.Equal(a, closest)

	// Then cards
	a = RankKey{Goals: 4, Cards: 5, ID: 21}
	b = RankKey{Goals: 6, Cards: 3, ID: 100}
	closest, _ = k.Closest(&a, &b)
	require.Equal(b, closest)

	// Then the id distance
	a = RankKey{Goals: 4, Cards: 1, ID: 18}
	b = RankKey{Goals: 6, Cards: 3, ID: 23}
	closest, _ = k.Closest(&a, &b)
	require.Equal(a, closest)

	// A full tie goes to the higher id
	a = RankKey{Goals: 4, Cards: 1, ID: 17}
	b = RankKey{Goals: 6, Cards: 3, ID: 23}
	closest, _ = k.Closest(&a, &b)
	require.Equal(b, closest)
	closest, _ = k.Closest(&b, &a)
	require.Equal(b, closest)
}

func TestAbsDiff(t *testing.T) {
	if absDiff(3, 7) != 4 || absDiff(7, 3) != 4 || absDiff(uint8(2), uint8(9)) != 7 {
		t.Fatal("absolute difference is wrong")
	}
}
