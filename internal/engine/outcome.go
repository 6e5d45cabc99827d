package engine

import "fmt"

// Resolution summarises what one outcome, or a whole choice, changed.
type Resolution struct {
	Lines []string
	// Next is the chained event id, empty when the outcome does not chain.
	Next string
}

// Apply resolves outcome against a copy of l and returns the new ledger.
// Empty optional fields are ignored, so Apply never fails.
func Apply(l Ledger, outcome OutcomeDefinition) (Ledger, Resolution) {
	out := l.Clone()
	res := Resolution{}

	if line, ok := applyStat(&out, outcome.Stat, outcome.Delta); ok {
		res.Lines = append(res.Lines, line)
	}
	if out.AddStatusEffect(outcome.AddStatus) {
		res.Lines = append(res.Lines, "Gained: "+outcome.AddStatus)
	}
	if out.RemoveStatusEffect(outcome.RemoveStatus) {
		res.Lines = append(res.Lines, "Lost: "+outcome.RemoveStatus)
	}
	if out.AddSkill(outcome.Skill) {
		res.Lines = append(res.Lines, "Skill Gained: "+outcome.Skill)
	}
	if out.SetMilestone(outcome.Milestone) {
		res.Lines = append(res.Lines, "Milestone: "+outcome.Milestone.Label())
	}
	if out.SetJob(outcome.Job) {
		res.Lines = append(res.Lines, "New Job: "+outcome.Job)
	}
	res.Next = outcome.Next
	return out, res
}

func applyStat(l *Ledger, stat Stat, delta float64) (string, bool) {
	switch stat {
	case StatNone:
		return "", false
	case StatMoney:
		if delta == 0 || !finite(delta) {
			return "", false
		}
		l.ApplyDelta(stat, delta)
		return fmt.Sprintf("%s: %+.2f", stat.Label(), delta), true
	default:
		amount := intDelta(delta)
		if amount == 0 {
			return "", false
		}
		l.ApplyDelta(stat, float64(amount))
		return fmt.Sprintf("%s: %+d", stat.Label(), amount), true
	}
}

// ResolveChoice applies every outcome of choice in order. When several
// outcomes chain, the last one in list order wins.
func ResolveChoice(l Ledger, choice ChoiceDefinition) (Ledger, Resolution) {
	cur := l.Clone()
	total := Resolution{}
	for _, outcome := range choice.Outcomes {
		var res Resolution
		cur, res = Apply(cur, outcome)
		total.Lines = append(total.Lines, res.Lines...)
		if res.Next != "" {
			total.Next = res.Next
		}
	}
	return cur, total
}
