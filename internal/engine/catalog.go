package engine

import (
	"errors"
	"fmt"
	"strings"
)

// OutcomeDefinition is one atomic effect of a choice.
type OutcomeDefinition struct {
	Stat         Stat      `yaml:"stat" json:"stat,omitempty"`
	Delta        float64   `yaml:"delta" json:"delta,omitempty"`
	AddStatus    string    `yaml:"add_status" json:"add_status,omitempty"`
	RemoveStatus string    `yaml:"remove_status" json:"remove_status,omitempty"`
	Skill        string    `yaml:"skill" json:"skill,omitempty"`
	Milestone    Milestone `yaml:"milestone" json:"milestone,omitempty"`
	Job          string    `yaml:"job" json:"job,omitempty"`
	Next         string    `yaml:"next" json:"next,omitempty"` // chained event id
}

type ChoiceDefinition struct {
	Text        string              `yaml:"text" json:"text"`
	Educational string              `yaml:"educational" json:"educational,omitempty"`
	Outcomes    []OutcomeDefinition `yaml:"outcomes" json:"outcomes"`
}

// EventDefinition is a narrative prompt bound to one phase of the day.
type EventDefinition struct {
	ID      string             `yaml:"id" json:"id"`
	Phase   Phase              `yaml:"phase" json:"phase"`
	Title   string             `yaml:"title" json:"title"`
	Body    string             `yaml:"body" json:"body"`
	Choices []ChoiceDefinition `yaml:"choices" json:"choices"`

	// Eligibility. Zero values mean "always eligible".
	RequiresSkill  string `yaml:"requires_skill" json:"requires_skill,omitempty"`
	RequiresStatus string `yaml:"requires_status" json:"requires_status,omitempty"`
	ExcludesStatus string `yaml:"excludes_status" json:"excludes_status,omitempty"`
	OncePerRun     bool   `yaml:"once_per_run" json:"once_per_run,omitempty"`
}

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable set of events a run draws from. Chains between
// events are ids resolved through Lookup, so cycles are fine.
type Catalog struct {
	events []EventDefinition
	byID   map[string]int
}

// NewCatalog validates events and takes a private copy of them.
func NewCatalog(events []EventDefinition) (*Catalog, error) {
	c := &Catalog{
		events: make([]EventDefinition, 0, len(events)),
		byID:   make(map[string]int, len(events)),
	}
	var problems []string
	for i, ev := range events {
		id := strings.TrimSpace(ev.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("event #%d has no id", i))
			continue
		}
		if _, dup := c.byID[id]; dup {
			problems = append(problems, fmt.Sprintf("duplicate event id %q", id))
			continue
		}
		ev.ID = id
		problems = append(problems, validateEvent(ev)...)
		c.byID[id] = len(c.events)
		c.events = append(c.events, cloneEvent(ev))
	}
	for _, ev := range c.events {
		for ci, ch := range ev.Choices {
			for oi, out := range ch.Outcomes {
				if out.Next == "" {
					continue
				}
				if _, ok := c.byID[out.Next]; !ok {
					problems = append(problems, fmt.Sprintf("event %q choice %d outcome %d chains to unknown event %q", ev.ID, ci, oi, out.Next))
				}
			}
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return c, nil
}

func validateEvent(ev EventDefinition) []string {
	var problems []string
	if !ev.Phase.Validate() {
		problems = append(problems, fmt.Sprintf("event %q has unknown phase %q", ev.ID, ev.Phase))
	}
	if len(ev.Choices) == 0 {
		problems = append(problems, fmt.Sprintf("event %q has no choices", ev.ID))
	}
	for ci, ch := range ev.Choices {
		for oi, out := range ch.Outcomes {
			if !out.Stat.Validate() {
				problems = append(problems, fmt.Sprintf("event %q choice %d outcome %d has unknown stat %q", ev.ID, ci, oi, out.Stat))
			}
			if !finite(out.Delta) {
				problems = append(problems, fmt.Sprintf("event %q choice %d outcome %d has non-finite delta", ev.ID, ci, oi))
			}
			if !out.Milestone.Validate() {
				problems = append(problems, fmt.Sprintf("event %q choice %d outcome %d has unknown milestone %q", ev.ID, ci, oi, out.Milestone))
			}
		}
	}
	return problems
}

func cloneEvent(ev EventDefinition) EventDefinition {
	choices := make([]ChoiceDefinition, len(ev.Choices))
	for i, ch := range ev.Choices {
		ch.Outcomes = append([]OutcomeDefinition(nil), ch.Outcomes...)
		choices[i] = ch
	}
	ev.Choices = choices
	return ev
}

func (c *Catalog) Len() int { return len(c.events) }

// Lookup resolves an event id.
func (c *Catalog) Lookup(id string) (EventDefinition, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return EventDefinition{}, false
	}
	return c.events[idx], true
}

// Events returns every event in load order.
func (c *Catalog) Events() []EventDefinition {
	return append([]EventDefinition(nil), c.events...)
}

// ForPhase returns the events tagged with phase, in load order.
func (c *Catalog) ForPhase(phase Phase) []EventDefinition {
	var out []EventDefinition
	for _, ev := range c.events {
		if ev.Phase == phase {
			out = append(out, ev)
		}
	}
	return out
}
