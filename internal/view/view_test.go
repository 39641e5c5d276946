package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_OrderPreservingNonMutating(t *testing.T) {
	in := []int{5, 1, 4, 2, 3}
	out := Filter(in, func(v int) bool { return v >= 3 })

	assert.Equal(t, []int{5, 4, 3}, out)
	assert.Equal(t, []int{5, 1, 4, 2, 3}, in)
}

func TestFilter_Idempotent(t *testing.T) {
	in := []string{"aa", "ab", "bb"}
	pred := func(s string) bool { return s[0] == 'a' }

	first := Filter(in, pred)
	second := Filter(in, pred)
	assert.Equal(t, first, second)
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("  SPICE ", "Zanzibar Spice Tour"))
	assert.True(t, MatchesQuery("ahmed", "x", "Ahmed"))
	assert.False(t, MatchesQuery("stone", "Spice Tour", "Approved"))
}

func TestCollection_ReplaceBumpsRev(t *testing.T) {
	var c Collection[int]

	_, rev0 := c.Snapshot()
	c.Replace([]int{1, 2})
	items, rev1 := c.Snapshot()

	assert.Equal(t, []int{1, 2}, items)
	assert.Greater(t, rev1, rev0)
}

func TestCollection_PatchOnlyMatched(t *testing.T) {
	var c Collection[int]
	c.Replace([]int{1, 2, 3})

	n := c.Patch(
		func(v int) bool { return v == 2 },
		func(v int) int { return 20 },
	)

	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1, 20, 3}, c.Items())
}

func TestCollection_PatchNoMatchKeepsRev(t *testing.T) {
	var c Collection[int]
	c.Replace([]int{1})
	rev := c.Rev()

	n := c.Patch(func(int) bool { return false }, func(v int) int { return v })

	assert.Zero(t, n)
	assert.Equal(t, rev, c.Rev())
}

func TestMemo_RecomputesOnlyOnChange(t *testing.T) {
	var m Memo[string, int]
	calls := 0
	compute := func() []int { calls++; return []int{1} }

	m.Get(1, "q", compute)
	m.Get(1, "q", compute)
	assert.Equal(t, 1, calls, "unchanged inputs must not recompute")

	m.Get(2, "q", compute)
	assert.Equal(t, 2, calls, "revision change recomputes")

	m.Get(2, "other", compute)
	assert.Equal(t, 3, calls, "filter change recomputes")
}

func TestMemo_IdenticalResultForUnchangedInputs(t *testing.T) {
	var m Memo[string, int]
	compute := func() []int { return []int{4, 2} }

	a := m.Get(3, "x", compute)
	b := m.Get(3, "x", compute)
	assert.Equal(t, a, b)
}
