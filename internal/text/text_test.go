package text

import (
	"context"
	"strings"
	"testing"

	"github.com/DaanHessen/daybreak/internal/engine"
)

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:      "R 0.00",
		20.5:   "R 20.50",
		-12.25: "R -12.25",
		1000:   "R 1000.00",
	}
	for in, want := range cases {
		if got := FormatMoney(in); got != want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", in, got, want)
		}
	}
	if got := StatLine(engine.StatHealth, 80); got != "Health: 80/100" {
		t.Fatalf("unexpected stat line %q", got)
	}
}

func TestConsequenceWithoutLinesReflects(t *testing.T) {
	n := NewTemplateNarrator()
	md, err := n.Consequence(context.Background(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, ReflectLine) {
		t.Fatalf("expected reflect line, got %q", md)
	}
	if strings.Contains(md, "Did you know?") {
		t.Fatal("empty educational text should be hidden")
	}
}

func TestConsequenceListsLinesAndEducation(t *testing.T) {
	n := NewTemplateNarrator()
	md, _ := n.Consequence(context.Background(), []string{"Hope: +10", "Skill Gained: Baking"}, "Soup kitchens serve daily.")
	for _, want := range []string{"- Hope: +10", "- Skill Gained: Baking", "> Soup kitchens serve daily."} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in %q", want, md)
		}
	}
	if strings.Contains(md, ReflectLine) {
		t.Fatal("reflect line should only appear without changes")
	}
}

func TestEventNumbersChoices(t *testing.T) {
	n := NewTemplateNarrator()
	ev := engine.EventDefinition{
		ID: "queue", Phase: engine.PhaseAfternoon, Title: "The Queue", Body: "A long line at the clinic.",
		Choices: []engine.ChoiceDefinition{{Text: "Wait"}, {Text: "Leave"}},
	}
	l := engine.NewLedger(engine.DefaultStartingStats())
	md, _ := n.Event(context.Background(), ev, l)
	for _, want := range []string{"Day 1 · Afternoon", "# The Queue", "1. Wait", "2. Leave"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in %q", want, md)
		}
	}
}

func TestArchiveCardSummarisesRun(t *testing.T) {
	l := engine.NewLedger(engine.DefaultStartingStats())
	l.Hope = 0
	l.CurrentDay = 4
	over := engine.GameOver{Reason: engine.ReasonHopeLost, Day: 4, Ledger: l}
	decisions := []engine.ChoiceRecord{
		{Day: 1, Phase: engine.PhaseMorning, EventTitle: "Bread", ChoiceText: "Share", Lines: []string{"a"}},
		{Day: 2, Phase: engine.PhaseEvening, EventTitle: "Rain", ChoiceText: "Shelter", Lines: []string{"a", "b", "c"}},
		{Day: 3, Phase: engine.PhaseMorning, EventTitle: "Quiet", ChoiceText: "Rest"},
	}
	card := ArchiveCard(over, decisions)
	if !strings.Contains(card, "day 4") || !strings.Contains(card, "You lost all hope.") {
		t.Fatalf("card missing summary: %q", card)
	}
	notable := NotableDecisions(decisions, 2)
	if len(notable) != 2 {
		t.Fatalf("expected 2 notable decisions, got %d", len(notable))
	}
	if notable[0] != "Day 2 Evening: Rain - Shelter" {
		t.Fatalf("unexpected first notable decision %q", notable[0])
	}
	if notable[1] != "Day 1 Morning: Bread - Share" {
		t.Fatalf("unexpected second notable decision %q", notable[1])
	}
}
