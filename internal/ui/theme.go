package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Alert    lipgloss.Color
	Border   lipgloss.Color
	BarFill  lipgloss.Color
	BarLow   lipgloss.Color
	BarEmpty lipgloss.Color
	Money    lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:     lipgloss.Color("#cdd6f4"),
		Muted:    lipgloss.Color("#a6adc8"),
		Accent:   lipgloss.Color("#cba6f7"),
		Alert:    lipgloss.Color("#f38ba8"),
		Border:   lipgloss.Color("#585b70"),
		BarFill:  lipgloss.Color("#94e2d5"),
		BarLow:   lipgloss.Color("#f9e2af"),
		BarEmpty: lipgloss.Color("#313244"),
		Money:    lipgloss.Color("#a6e3a1"),
	},
	"dracula": {
		Text:     lipgloss.Color("#f8f8f2"),
		Muted:    lipgloss.Color("#6272a4"),
		Accent:   lipgloss.Color("#ff79c6"),
		Alert:    lipgloss.Color("#ff5555"),
		Border:   lipgloss.Color("#44475a"),
		BarFill:  lipgloss.Color("#50fa7b"),
		BarLow:   lipgloss.Color("#f1fa8c"),
		BarEmpty: lipgloss.Color("#343746"),
		Money:    lipgloss.Color("#8be9fd"),
	},
	"gruvbox": {
		Text:     lipgloss.Color("#ebdbb2"),
		Muted:    lipgloss.Color("#a89984"),
		Accent:   lipgloss.Color("#fabd2f"),
		Alert:    lipgloss.Color("#fb4934"),
		Border:   lipgloss.Color("#665c54"),
		BarFill:  lipgloss.Color("#b8bb26"),
		BarLow:   lipgloss.Color("#fe8019"),
		BarEmpty: lipgloss.Color("#3c3836"),
		Money:    lipgloss.Color("#8ec07c"),
	},
	"solarized_dark": {
		Text:     lipgloss.Color("#fdf6e3"),
		Muted:    lipgloss.Color("#93a1a1"),
		Accent:   lipgloss.Color("#b58900"),
		Alert:    lipgloss.Color("#dc322f"),
		Border:   lipgloss.Color("#586e75"),
		BarFill:  lipgloss.Color("#859900"),
		BarLow:   lipgloss.Color("#cb4b16"),
		BarEmpty: lipgloss.Color("#073642"),
		Money:    lipgloss.Color("#2aa198"),
	},
}

const defaultTheme = "catppuccin"

// theme is a palette turned into ready-made styles.
type theme struct {
	name    string
	p       palette
	topBar  lipgloss.Style
	bottom  lipgloss.Style
	sidebar lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	money   lipgloss.Style
	alert   lipgloss.Style
	muted   lipgloss.Style
}

func newTheme(name string) theme {
	if _, ok := palettes[name]; !ok {
		name = defaultTheme
	}
	p := palettes[name]
	return theme{
		name:    name,
		p:       p,
		topBar:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		bottom:  lipgloss.NewStyle().Foreground(p.Muted),
		sidebar: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		label:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		value:   lipgloss.NewStyle().Foreground(p.Text),
		money:   lipgloss.NewStyle().Foreground(p.Money),
		alert:   lipgloss.NewStyle().Bold(true).Foreground(p.Alert),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// bar draws a 0-100 stat as a ten cell gauge that turns to the low colour
// at a quarter or below.
func (t theme) bar(v int) string {
	const width = 10
	fill := int((float64(v)/100.0)*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	colour := t.p.BarFill
	if v <= 25 {
		colour = t.p.BarLow
	}
	full := lipgloss.NewStyle().Foreground(colour).Render(strings.Repeat("█", fill))
	empty := lipgloss.NewStyle().Foreground(t.p.BarEmpty).Render(strings.Repeat("·", width-fill))
	return full + empty
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
