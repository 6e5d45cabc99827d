package ui

import "github.com/DaanHessen/daybreak/internal/engine"

// Mode is what the panel currently shows.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeEvent
	ModeConsequence
	ModeGameOver
)

// Panel is the engine.Presenter of the TUI. The controller writes into it
// synchronously and the model reads it back when rendering.
type Panel struct {
	mode        Mode
	event       engine.EventDefinition
	lines       []string
	educational string
	reason      string
}

func NewPanel() *Panel { return &Panel{} }

func (p *Panel) PresentEvent(ev engine.EventDefinition) {
	p.mode = ModeEvent
	p.event = ev
	p.lines = nil
	p.educational = ""
}

func (p *Panel) PresentConsequence(lines []string, educational string) {
	p.mode = ModeConsequence
	p.lines = append([]string(nil), lines...)
	p.educational = educational
}

func (p *Panel) ReportGameOver(reason string) {
	p.mode = ModeGameOver
	p.reason = reason
}

func (p *Panel) Mode() Mode                    { return p.mode }
func (p *Panel) Event() engine.EventDefinition { return p.event }

// Reset clears the panel before a restart so a failed start shows nothing stale.
func (p *Panel) Reset() { *p = Panel{} }
