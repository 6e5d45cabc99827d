package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]EventDefinition{
		ev("m1", PhaseMorning),
		ev("m2", PhaseMorning),
		ev("m3", PhaseMorning),
		ev("a1", PhaseAfternoon),
		ev("e1", PhaseEvening),
	})
	require.NoError(t, err)
	return c
}

func TestSelectEventMatchesPhase(t *testing.T) {
	c := mixedCatalog(t)
	seed, _ := NewRunSeed("phase-check")
	sel := NewRandomSelector(seed.Stream("s"))
	for i := 0; i < 200; i++ {
		for _, p := range AllPhases {
			got, ok := sel.SelectEvent(c, p)
			require.True(t, ok)
			assert.Equal(t, p, got.Phase)
		}
	}
}

func TestSelectEventCoversCandidates(t *testing.T) {
	c := mixedCatalog(t)
	seed, _ := NewRunSeed("cover")
	sel := NewRandomSelector(seed.Stream("s"))
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		got, _ := sel.SelectEvent(c, PhaseMorning)
		seen[got.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestSelectEventEmpty(t *testing.T) {
	c, err := NewCatalog([]EventDefinition{ev("m1", PhaseMorning)})
	require.NoError(t, err)
	seed, _ := NewRunSeed("empty")
	sel := NewRandomSelector(seed.Stream("s"))

	_, ok := sel.SelectEvent(c, PhaseEvening)
	assert.False(t, ok)
	_, ok = sel.SelectEvent(nil, PhaseMorning)
	assert.False(t, ok)
	_, ok = sel.SelectEvent(c, PhaseMorning, func(EventDefinition) bool { return false })
	assert.False(t, ok)
}

func TestSelectEventDeterministic(t *testing.T) {
	c := mixedCatalog(t)
	pick := func() []string {
		seed, _ := NewRunSeed("same")
		sel := NewRandomSelector(seed.Stream("game:1").Child("select"))
		var ids []string
		for i := 0; i < 20; i++ {
			got, _ := sel.SelectEvent(c, PhaseMorning)
			ids = append(ids, got.ID)
		}
		return ids
	}
	assert.Equal(t, pick(), pick())
}

func TestEligibilityFilters(t *testing.T) {
	gated := ev("gated", PhaseMorning)
	gated.RequiresSkill = "Baking"
	needsStatus := ev("needs", PhaseMorning)
	needsStatus.RequiresStatus = "Hungry"
	excluded := ev("excl", PhaseMorning)
	excluded.ExcludesStatus = "Hungry"

	l := NewLedger(DefaultStartingStats())
	f := EligibleFor(l)
	assert.False(t, f(gated))
	assert.False(t, f(needsStatus))
	assert.True(t, f(excluded))

	l.AddSkill("Baking")
	l.AddStatusEffect("Hungry")
	f = EligibleFor(l)
	assert.True(t, f(gated))
	assert.True(t, f(needsStatus))
	assert.False(t, f(excluded))
}

func TestHistoryFilters(t *testing.T) {
	once := ev("once", PhaseMorning)
	once.OncePerRun = true
	repeat := ev("repeat", PhaseMorning)

	h := EventHistory{}
	assert.True(t, NotFired(h)(once))
	assert.True(t, Unseen(h)(repeat))

	h.record("once")
	h.record("repeat")
	assert.False(t, NotFired(h)(once))
	assert.True(t, NotFired(h)(repeat))
	assert.False(t, Unseen(h)(repeat))
}
