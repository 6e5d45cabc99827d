package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerDefaults(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	assert.Equal(t, 0.0, l.Money)
	assert.Equal(t, 100, l.Health)
	assert.Equal(t, 100, l.Hope)
	assert.Equal(t, 50, l.CommunityTrust)
	assert.Equal(t, 1, l.CurrentDay)
	assert.Empty(t, l.Skills)
	assert.Empty(t, l.StatusEffects)
}

func TestNewLedgerClampsStart(t *testing.T) {
	l := NewLedger(StartingStats{Money: -50, Health: 140, Hope: -3, CommunityTrust: 101})
	assert.Equal(t, -50.0, l.Money)
	assert.Equal(t, 100, l.Health)
	assert.Equal(t, 0, l.Hope)
	assert.Equal(t, 100, l.CommunityTrust)
}

func TestApplyDeltaKeepsBoundedStatsInRange(t *testing.T) {
	deltas := []float64{-1000, -101, -60, -1, 0, 1, 37, 99, 250, 1e6}
	for _, stat := range []Stat{StatHealth, StatHope, StatCommunityTrust} {
		for _, start := range []int{0, 1, 50, 99, 100} {
			for _, d := range deltas {
				l := NewLedger(StartingStats{Health: start, Hope: start, CommunityTrust: start})
				l.ApplyDelta(stat, d)
				v := l.Value(stat)
				assert.GreaterOrEqual(t, v, 0.0, "%s start=%d delta=%v", stat, start, d)
				assert.LessOrEqual(t, v, 100.0, "%s start=%d delta=%v", stat, start, d)
			}
		}
	}
}

func TestApplyDeltaMoneyUnbounded(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	l.ApplyDelta(StatMoney, -2500.5)
	assert.InDelta(t, -2500.5, l.Money, 1e-9)
	l.ApplyDelta(StatMoney, 5000)
	assert.InDelta(t, 2499.5, l.Money, 1e-9)
}

func TestApplyDeltaTruncatesIntegerStats(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	l.ApplyDelta(StatHope, -10.9)
	assert.Equal(t, 90, l.Hope)
	l.ApplyDelta(StatDay, 2)
	assert.Equal(t, 3, l.CurrentDay)
	l.ApplyDelta(StatNone, 50)
	assert.Equal(t, NewLedger(DefaultStartingStats()).Health, l.Health)
}

func TestSkillsAndStatusIdempotent(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	assert.True(t, l.AddSkill("Baking"))
	assert.False(t, l.AddSkill("Baking"))
	assert.False(t, l.AddSkill(""))
	assert.Equal(t, []string{"Baking"}, l.Skills)

	assert.True(t, l.AddStatusEffect("Tired"))
	assert.False(t, l.AddStatusEffect("Tired"))
	assert.False(t, l.RemoveStatusEffect("Hungry"))
	assert.True(t, l.RemoveStatusEffect("Tired"))
	assert.False(t, l.HasStatusEffect("Tired"))
	assert.Empty(t, l.StatusEffects)
}

func TestMilestonesAndJob(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	assert.True(t, l.SetMilestone(MilestoneStableHousing))
	assert.False(t, l.SetMilestone(MilestoneStableHousing))
	assert.True(t, l.SetMilestone(MilestoneNPOContact))
	assert.False(t, l.SetMilestone("lottery"))
	assert.True(t, l.HasStableHousing)
	assert.True(t, l.HasNPOContact)

	assert.True(t, l.SetJob("Car guard"))
	assert.False(t, l.SetJob("Car guard"))
	assert.False(t, l.SetJob(""))
	assert.Equal(t, "Car guard", l.CurrentJob)
}

func TestCloneSharesNothing(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	l.AddSkill("Sewing")
	l.AddStatusEffect("Cold")
	c := l.Clone()
	c.AddSkill("Baking")
	c.Skills[0] = "Knitting"
	c.RemoveStatusEffect("Cold")
	require.Equal(t, []string{"Sewing"}, l.Skills)
	require.Equal(t, []string{"Cold"}, l.StatusEffects)
}

func TestPhaseCycle(t *testing.T) {
	p := PhaseMorning
	wraps := 0
	for i := 0; i < 9; i++ {
		var wrapped bool
		p, wrapped = p.Next()
		if wrapped {
			wraps++
		}
	}
	assert.Equal(t, PhaseMorning, p)
	assert.Equal(t, 3, wraps)
	assert.Equal(t, AllPhases, ListPhases())
}

func TestApplyDeltaSaturatesHugeAmounts(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	l.Health = 50
	l.ApplyDelta(StatHealth, 1e19)
	assert.Equal(t, 100, l.Health)
	l.ApplyDelta(StatHope, -1e19)
	assert.Equal(t, 0, l.Hope)
	l.ApplyDelta(StatCommunityTrust, math.MaxInt64)
	assert.Equal(t, 100, l.CommunityTrust)

	day := l.CurrentDay
	l.ApplyDelta(StatDay, 1e19)
	assert.Equal(t, day+maxIntDelta, l.CurrentDay)
}

func TestApplyDeltaIgnoresNonFinite(t *testing.T) {
	l := NewLedger(DefaultStartingStats())
	l.Money = -500
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, s := range AllStats {
			l.ApplyDelta(s, bad)
		}
	}
	assert.Equal(t, NewLedger(DefaultStartingStats()).Health, l.Health)
	assert.Equal(t, 100, l.Hope)
	assert.Equal(t, 50, l.CommunityTrust)
	assert.Equal(t, -500.0, l.Money)

	l.ApplyDelta(StatMoney, -600)
	_, over := CheckGameOver(l)
	assert.True(t, over, "debt check still works after a NaN delta")
}
