package engine

// EventFilter is an eligibility predicate. Filters compose by conjunction
// and run before the random pick.
type EventFilter func(EventDefinition) bool

// EventSelector picks the next event for a phase.
type EventSelector interface {
	SelectEvent(c *Catalog, phase Phase, filters ...EventFilter) (EventDefinition, bool)
}

// RandomSelector picks uniformly among the eligible events of a phase.
type RandomSelector struct {
	stream *Stream
}

func NewRandomSelector(stream *Stream) *RandomSelector {
	return &RandomSelector{stream: stream}
}

// SelectEvent returns false when nothing in the catalog matches phase and filters.
func (s *RandomSelector) SelectEvent(c *Catalog, phase Phase, filters ...EventFilter) (EventDefinition, bool) {
	candidates := eligibleEvents(c, phase, filters)
	if len(candidates) == 0 {
		return EventDefinition{}, false
	}
	return candidates[s.stream.Intn(len(candidates))], true
}

func eligibleEvents(c *Catalog, phase Phase, filters []EventFilter) []EventDefinition {
	if c == nil {
		return nil
	}
	var out []EventDefinition
next:
	for _, ev := range c.ForPhase(phase) {
		for _, keep := range filters {
			if keep != nil && !keep(ev) {
				continue next
			}
		}
		out = append(out, ev)
	}
	return out
}

// EventHistory counts how often each event has been presented in the current game.
type EventHistory map[string]int

func (h EventHistory) record(id string) { h[id]++ }

// Seen reports whether id has been presented at least once.
func (h EventHistory) Seen(id string) bool { return h[id] > 0 }

// EligibleFor applies the skill and status requirements of an event to l.
func EligibleFor(l Ledger) EventFilter {
	return func(ev EventDefinition) bool {
		if ev.RequiresSkill != "" && !l.HasSkill(ev.RequiresSkill) {
			return false
		}
		if ev.RequiresStatus != "" && !l.HasStatusEffect(ev.RequiresStatus) {
			return false
		}
		if ev.ExcludesStatus != "" && l.HasStatusEffect(ev.ExcludesStatus) {
			return false
		}
		return true
	}
}

// NotFired drops once-per-run events that already appeared.
func NotFired(h EventHistory) EventFilter {
	return func(ev EventDefinition) bool {
		return !ev.OncePerRun || !h.Seen(ev.ID)
	}
}

// Unseen drops every event that already appeared.
func Unseen(h EventHistory) EventFilter {
	return func(ev EventDefinition) bool { return !h.Seen(ev.ID) }
}
