package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(id string, phase Phase, outcomes ...OutcomeDefinition) EventDefinition {
	return EventDefinition{
		ID:      id,
		Phase:   phase,
		Title:   id,
		Body:    "body of " + id,
		Choices: []ChoiceDefinition{{Text: "go", Outcomes: outcomes}},
	}
}

func TestNewCatalogIndexesEvents(t *testing.T) {
	c, err := NewCatalog([]EventDefinition{
		ev("a", PhaseMorning),
		ev("b", PhaseEvening, OutcomeDefinition{Next: "b"}),
		ev("c", PhaseMorning),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	got, ok := c.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, PhaseEvening, got.Phase)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	morning := c.ForPhase(PhaseMorning)
	require.Len(t, morning, 2)
	assert.Equal(t, "a", morning[0].ID)
	assert.Equal(t, "c", morning[1].ID)
	assert.Empty(t, c.ForPhase(PhaseAfternoon))
}

func TestNewCatalogRejectsBadEvents(t *testing.T) {
	cases := map[string][]EventDefinition{
		"empty id":      {ev(" ", PhaseMorning)},
		"duplicate":     {ev("a", PhaseMorning), ev("a", PhaseEvening)},
		"bad phase":     {ev("a", "night")},
		"no choices":    {{ID: "a", Phase: PhaseMorning}},
		"bad stat":      {ev("a", PhaseMorning, OutcomeDefinition{Stat: "luck", Delta: 1})},
		"bad milestone": {ev("a", PhaseMorning, OutcomeDefinition{Milestone: "mansion"})},
		"dangling next": {ev("a", PhaseMorning, OutcomeDefinition{Next: "ghost"})},
		"nan delta":     {ev("a", PhaseMorning, OutcomeDefinition{Stat: StatHope, Delta: math.NaN()})},
		"inf delta":     {ev("a", PhaseMorning, OutcomeDefinition{Stat: StatMoney, Delta: math.Inf(-1)})},
	}
	for name, events := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(events)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestCatalogOwnsItsEvents(t *testing.T) {
	src := []EventDefinition{ev("a", PhaseMorning, OutcomeDefinition{Stat: StatHope, Delta: 1})}
	c, err := NewCatalog(src)
	require.NoError(t, err)
	src[0].Title = "changed"
	src[0].Choices[0].Outcomes[0].Delta = 99
	got, _ := c.Lookup("a")
	assert.Equal(t, "a", got.Title)
	assert.Equal(t, 1.0, got.Choices[0].Outcomes[0].Delta)
}

func TestEmptyCatalogIsValid(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestNewCatalogAcceptsHugeFiniteDelta(t *testing.T) {
	_, err := NewCatalog([]EventDefinition{ev("a", PhaseMorning, OutcomeDefinition{Stat: StatHope, Delta: 1e19})})
	require.NoError(t, err)
}
