package engine

import "math"

// Ledger is the mutable player state for one run.
type Ledger struct {
	Money          float64  `json:"money"`
	Health         int      `json:"health"`
	Hope           int      `json:"hope"`
	CommunityTrust int      `json:"community_trust"`
	CurrentDay     int      `json:"current_day"`
	Skills         []string `json:"skills"`
	StatusEffects  []string `json:"status_effects"`

	HasStableHousing bool   `json:"has_stable_housing"`
	HasNPOContact    bool   `json:"has_npo_contact"`
	CurrentJob       string `json:"current_job"`
}

// StartingStats are the values a new game begins with.
type StartingStats struct {
	Money          float64
	Health         int
	Hope           int
	CommunityTrust int
}

// DefaultStartingStats matches the design sheet: full health and hope, half trust, no money.
func DefaultStartingStats() StartingStats {
	return StartingStats{Money: 0, Health: 100, Hope: 100, CommunityTrust: 50}
}

// NewLedger returns a day 1 ledger. Bounded stats are clamped on the way in.
func NewLedger(start StartingStats) Ledger {
	return Ledger{
		Money:          start.Money,
		Health:         Clamp(start.Health),
		Hope:           Clamp(start.Hope),
		CommunityTrust: Clamp(start.CommunityTrust),
		CurrentDay:     1,
	}
}

// Clamp stat into 0-100.
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ApplyDelta changes one stat. Health, hope and trust stay within 0-100;
// money and day are plain additions. Fractional amounts are truncated for
// the integer stats. Non-finite amounts are ignored.
func (l *Ledger) ApplyDelta(stat Stat, amount float64) {
	if !finite(amount) {
		return
	}
	switch stat {
	case StatMoney:
		l.Money += amount
	case StatHealth:
		l.Health = clampAdd(l.Health, amount)
	case StatHope:
		l.Hope = clampAdd(l.Hope, amount)
	case StatCommunityTrust:
		l.CommunityTrust = clampAdd(l.CommunityTrust, amount)
	case StatDay:
		l.CurrentDay += intDelta(amount)
	}
}

// maxIntDelta bounds integer deltas so conversion from float never overflows.
const maxIntDelta = 1 << 30

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// intDelta truncates toward zero and saturates at maxIntDelta.
func intDelta(amount float64) int {
	if !finite(amount) {
		return 0
	}
	return int(math.Trunc(math.Max(-maxIntDelta, math.Min(maxIntDelta, amount))))
}

// clampAdd adds in float space so huge deltas saturate instead of wrapping.
func clampAdd(v int, amount float64) int {
	sum := float64(v) + math.Trunc(amount)
	return Clamp(int(math.Max(0, math.Min(100, sum))))
}

// Value reports a stat as float64 so callers can treat money and counters alike.
func (l Ledger) Value(stat Stat) float64 {
	switch stat {
	case StatMoney:
		return l.Money
	case StatHealth:
		return float64(l.Health)
	case StatHope:
		return float64(l.Hope)
	case StatCommunityTrust:
		return float64(l.CommunityTrust)
	case StatDay:
		return float64(l.CurrentDay)
	default:
		return 0
	}
}

func (l Ledger) HasSkill(id string) bool        { return hasString(l.Skills, id) }
func (l Ledger) HasStatusEffect(id string) bool { return hasString(l.StatusEffects, id) }

// AddSkill reports whether the skill was newly gained.
func (l *Ledger) AddSkill(id string) bool {
	return addIfAbsent(&l.Skills, id)
}

func (l *Ledger) AddStatusEffect(id string) bool {
	return addIfAbsent(&l.StatusEffects, id)
}

func (l *Ledger) RemoveStatusEffect(id string) bool {
	return removeIfPresent(&l.StatusEffects, id)
}

// SetMilestone raises a progression flag, reporting whether it was newly set.
func (l *Ledger) SetMilestone(m Milestone) bool {
	switch m {
	case MilestoneStableHousing:
		if l.HasStableHousing {
			return false
		}
		l.HasStableHousing = true
		return true
	case MilestoneNPOContact:
		if l.HasNPOContact {
			return false
		}
		l.HasNPOContact = true
		return true
	default:
		return false
	}
}

// SetJob replaces the current job. Empty input is ignored.
func (l *Ledger) SetJob(job string) bool {
	if job == "" || job == l.CurrentJob {
		return false
	}
	l.CurrentJob = job
	return true
}

// Clone returns a copy that shares no slices with l.
func (l Ledger) Clone() Ledger {
	out := l
	out.Skills = append([]string(nil), l.Skills...)
	out.StatusEffects = append([]string(nil), l.StatusEffects...)
	return out
}

func hasString(list []string, v string) bool {
	for _, existing := range list {
		if existing == v {
			return true
		}
	}
	return false
}

func addIfAbsent(list *[]string, v string) bool {
	if v == "" || hasString(*list, v) {
		return false
	}
	*list = append(*list, v)
	return true
}

func removeIfPresent(list *[]string, v string) bool {
	if v == "" || len(*list) == 0 {
		return false
	}
	rest := make([]string, 0, len(*list))
	removed := false
	for _, existing := range *list {
		if existing == v {
			removed = true
			continue
		}
		rest = append(rest, existing)
	}
	if removed {
		*list = rest
	}
	return removed
}
