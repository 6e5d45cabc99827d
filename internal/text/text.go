package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/DaanHessen/daybreak/internal/engine"
)

// ReflectLine is shown when a choice changed nothing.
const ReflectLine = "You reflect on your choice."

// Narrator turns engine output into markdown for the UI.
type Narrator interface {
	Event(ctx context.Context, ev engine.EventDefinition, l engine.Ledger) (string, error)
	Consequence(ctx context.Context, lines []string, educational string) (string, error)
	GameOver(ctx context.Context, reason string, l engine.Ledger) (string, error)
}

// templateNarrator is deterministic and offline.
type templateNarrator struct{}

func NewTemplateNarrator() Narrator { return &templateNarrator{} }

func (t *templateNarrator) Event(ctx context.Context, ev engine.EventDefinition, l engine.Ledger) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## Day %d · %s\n\n", l.CurrentDay, ev.Phase.Title())
	fmt.Fprintf(&b, "# %s\n\n", ev.Title)
	if body := strings.TrimSpace(ev.Body); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	b.WriteString("### What do you do?\n\n")
	for i, ch := range ev.Choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ch.Text)
	}
	return b.String(), nil
}

func (t *templateNarrator) Consequence(ctx context.Context, lines []string, educational string) (string, error) {
	var b strings.Builder
	b.WriteString("## Consequence\n\n")
	if len(lines) == 0 {
		b.WriteString(ReflectLine + "\n")
	}
	for _, line := range lines {
		b.WriteString("- " + line + "\n")
	}
	if edu := strings.TrimSpace(educational); edu != "" {
		b.WriteString("\n### Did you know?\n\n")
		for _, para := range strings.Split(edu, "\n") {
			b.WriteString("> " + para + "\n")
		}
	}
	return b.String(), nil
}

func (t *templateNarrator) GameOver(ctx context.Context, reason string, l engine.Ledger) (string, error) {
	var b strings.Builder
	b.WriteString("# Game Over\n\n")
	b.WriteString(reason + "\n\n")
	days := "days"
	if l.CurrentDay == 1 {
		days = "day"
	}
	fmt.Fprintf(&b, "You lasted %d %s.\n\n", l.CurrentDay, days)
	for _, line := range StatusLines(l) {
		b.WriteString("- " + line + "\n")
	}
	return b.String(), nil
}

// FormatMoney renders a balance in rand, e.g. "R 20.50".
func FormatMoney(v float64) string { return fmt.Sprintf("R %.2f", v) }

// StatLine renders a bounded stat as "Health: 80/100".
func StatLine(stat engine.Stat, v int) string { return fmt.Sprintf("%s: %d/100", stat.Label(), v) }

// StatusLines summarises a ledger, one fact per line.
func StatusLines(l engine.Ledger) []string {
	out := []string{
		"Money: " + FormatMoney(l.Money),
		StatLine(engine.StatHealth, l.Health),
		StatLine(engine.StatHope, l.Hope),
		StatLine(engine.StatCommunityTrust, l.CommunityTrust),
	}
	if l.CurrentJob != "" {
		out = append(out, "Job: "+l.CurrentJob)
	}
	if l.HasStableHousing {
		out = append(out, "Housing: stable")
	}
	if l.HasNPOContact {
		out = append(out, "NPO contact: yes")
	}
	if len(l.Skills) > 0 {
		out = append(out, "Skills: "+strings.Join(l.Skills, ", "))
	}
	if len(l.StatusEffects) > 0 {
		out = append(out, "Status: "+strings.Join(l.StatusEffects, ", "))
	}
	return out
}

// ArchiveCard is the markdown summary stored when a run ends.
func ArchiveCard(over engine.GameOver, decisions []engine.ChoiceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run ended on day %d\n\n", over.Day)
	b.WriteString(over.Reason.Message() + "\n\n")
	b.WriteString("## Final state\n\n")
	for _, line := range StatusLines(over.Ledger) {
		b.WriteString("- " + line + "\n")
	}
	if len(decisions) > 0 {
		b.WriteString("\n## Notable decisions\n\n")
		for _, d := range NotableDecisions(decisions, 5) {
			b.WriteString("- " + d + "\n")
		}
	}
	return b.String()
}

// NotableDecisions picks the decisions with the most consequences, newest
// first among ties, formatted as "Day 3 Evening: Title - choice".
func NotableDecisions(decisions []engine.ChoiceRecord, limit int) []string {
	picked := make([]engine.ChoiceRecord, 0, limit)
	for i := len(decisions) - 1; i >= 0; i-- {
		d := decisions[i]
		pos := len(picked)
		for pos > 0 && len(picked[pos-1].Lines) < len(d.Lines) {
			pos--
		}
		if pos >= limit {
			continue
		}
		picked = append(picked, engine.ChoiceRecord{})
		copy(picked[pos+1:], picked[pos:])
		picked[pos] = d
		if len(picked) > limit {
			picked = picked[:limit]
		}
	}
	out := make([]string, len(picked))
	for i, d := range picked {
		out[i] = fmt.Sprintf("Day %d %s: %s - %s", d.Day, d.Phase.Title(), d.EventTitle, d.ChoiceText)
	}
	return out
}
