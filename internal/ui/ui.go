package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/DaanHessen/daybreak/internal/engine"
	"github.com/DaanHessen/daybreak/internal/text"
)

const (
	viewGame    = "game"
	viewArchive = "archive"
	viewHelp    = "help"
)

// ArchiveFunc lists the markdown of recent archive cards, newest first.
type ArchiveFunc func(ctx context.Context, limit int) ([]string, error)

type model struct {
	ctx      context.Context
	ctl      *engine.Controller
	panel    *Panel
	narrator text.Narrator
	archive  ArchiveFunc
	seed     string

	theme  theme
	view   string
	md     string
	status string
	width  int
	height int

	archiveCards []string
	archiveIndex int

	glam *glamourCache
}

// glamourCache keeps one renderer per wrap width across model copies.
type glamourCache struct {
	r     *glamour.TermRenderer
	width int
}

func newModel(ctx context.Context, ctl *engine.Controller, panel *Panel, opts Options) model {
	narrator := opts.Narrator
	if narrator == nil {
		narrator = text.NewTemplateNarrator()
	}
	m := model{
		ctx:      ctx,
		ctl:      ctl,
		panel:    panel,
		narrator: narrator,
		archive:  opts.Archive,
		seed:     opts.Seed,
		theme:    newTheme(opts.Theme),
		view:     viewGame,
		glam:     &glamourCache{},
	}
	m.refresh()
	return m
}

// startGame restarts the run, keeping any error as a status line.
func (m *model) startGame() {
	m.panel.Reset()
	m.status = ""
	if err := m.ctl.StartGame(); err != nil {
		m.status = describeError(err)
	}
	m.refresh()
}

func (m *model) choose(idx int) {
	if m.ctl.State() != engine.StateAwaitingChoice {
		return
	}
	ev, ok := m.ctl.CurrentEvent()
	if !ok || idx >= len(ev.Choices) {
		return
	}
	m.status = ""
	if err := m.ctl.SubmitChoiceFor(ev.ID, idx); err != nil {
		m.status = describeError(err)
	}
	m.refresh()
}

func (m *model) acknowledge() {
	if m.ctl.State() != engine.StateAwaitingAcknowledge {
		return
	}
	m.status = ""
	if err := m.ctl.Acknowledge(); err != nil {
		m.status = describeError(err)
	}
	m.refresh()
}

func describeError(err error) string {
	if errors.Is(err, engine.ErrNoEvents) {
		return "No events are available right now. Press n to start over."
	}
	return err.Error()
}

// refresh rebuilds the markdown for the current panel contents.
func (m *model) refresh() {
	var (
		md  string
		err error
	)
	switch m.panel.mode {
	case ModeEvent:
		md, err = m.narrator.Event(m.ctx, m.panel.event, m.ctl.Ledger())
	case ModeConsequence:
		md, err = m.narrator.Consequence(m.ctx, m.panel.lines, m.panel.educational)
	case ModeGameOver:
		md, err = m.narrator.GameOver(m.ctx, m.panel.reason, m.ctl.Ledger())
	default:
		md = "# Daybreak\n\nPress **n** to begin."
	}
	if err != nil {
		md = "Narration failed: " + err.Error()
	}
	m.md = md
}

func (m *model) refreshArchive() {
	m.archiveCards = nil
	m.archiveIndex = 0
	if m.archive == nil {
		m.status = "Run journal is off; start with --dsn to keep an archive."
		return
	}
	cards, err := m.archive(m.ctx, 20)
	if err != nil {
		m.status = "Archive unavailable: " + err.Error()
		return
	}
	m.archiveCards = cards
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		k := msg.String()
		switch k {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "t":
			m.theme = newTheme(nextThemeName(m.theme.name, 1))
			return m, nil
		case "?":
			m.view = toggle(m.view, viewHelp)
			return m, nil
		case "a":
			m.view = toggle(m.view, viewArchive)
			if m.view == viewArchive {
				m.refreshArchive()
			}
			return m, nil
		case "esc":
			m.view = viewGame
			return m, nil
		}
		if m.view == viewArchive {
			switch k {
			case "up", "k":
				if m.archiveIndex > 0 {
					m.archiveIndex--
				}
			case "down", "j":
				if m.archiveIndex < len(m.archiveCards)-1 {
					m.archiveIndex++
				}
			}
			return m, nil
		}
		if m.view != viewGame {
			return m, nil
		}
		switch k {
		case "n":
			m.startGame()
		case "enter", " ":
			m.acknowledge()
		default:
			if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				m.choose(int(k[0] - '1'))
			}
		}
	}
	return m, nil
}

func toggle(current, target string) string {
	if current == target {
		return viewGame
	}
	return target
}

func (m model) View() string {
	switch m.view {
	case viewHelp:
		return m.renderHelp()
	case viewArchive:
		return m.renderArchive()
	default:
		return m.renderGame()
	}
}

// Layout rendering -----------------------------------------------------------
func (m *model) dims() (int, int) {
	w := m.width
	if w <= 0 {
		w = 100
	}
	sidebarWidth := 32
	if w < 90 {
		sidebarWidth = 26
	}
	return w, sidebarWidth
}

func (m *model) renderGame() string {
	w, sidebarWidth := m.dims()
	mainWidth := w - sidebarWidth - 2
	main := lipgloss.NewStyle().Width(mainWidth).Render(m.renderMarkdown(m.md, mainWidth))
	side := m.theme.sidebar.Width(sidebarWidth).Render(m.buildSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(w), body, m.renderBottomBar(w))
}

func (m *model) renderMarkdown(md string, width int) string {
	if m.glam.r == nil || m.glam.width != width {
		r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width-2))
		if err != nil {
			return md
		}
		m.glam.r, m.glam.width = r, width
	}
	out, err := m.glam.r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m *model) renderTopBar(w int) string {
	l := m.ctl.Ledger()
	left := strings.Join([]string{"DAYBREAK", fmt.Sprintf("Day %d", l.CurrentDay), m.ctl.Phase().Title()}, " • ")
	right := ""
	if m.seed != "" {
		right = "seed " + m.seed
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.theme.topBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderBottomBar(w int) string {
	var keys string
	switch m.ctl.State() {
	case engine.StateAwaitingChoice:
		ev, _ := m.ctl.CurrentEvent()
		keys = fmt.Sprintf("[1-%d] choose", len(ev.Choices))
	case engine.StateAwaitingAcknowledge:
		keys = "[Enter] continue"
	default:
		keys = "[N] new game"
	}
	keys += "  [T] theme  [A] archive  [?] help  [Q] quit"
	line := keys
	if m.status != "" {
		line = m.theme.alert.Render(truncate(m.status, w)) + "\n" + keys
	}
	return m.theme.bottom.Render(line)
}

// truncate cuts s to w terminal cells without splitting a rune.
func truncate(s string, w int) string {
	if w <= 10 {
		return s
	}
	return ansi.Truncate(s, w, "...")
}

func (m *model) buildSidebar() string {
	l := m.ctl.Ledger()
	t := m.theme
	var b strings.Builder
	b.WriteString(t.label.Render("MONEY") + "\n")
	moneyStyle := t.money
	if l.Money < 0 {
		moneyStyle = t.alert
	}
	b.WriteString(moneyStyle.Render(text.FormatMoney(l.Money)) + "\n\n")

	b.WriteString(t.label.Render("STATS") + "\n")
	for _, s := range []engine.Stat{engine.StatHealth, engine.StatHope, engine.StatCommunityTrust} {
		v := int(l.Value(s))
		fmt.Fprintf(&b, "%-6s %s %3d\n", shortLabel(s), t.bar(v), v)
	}
	b.WriteString("\n")

	b.WriteString(t.label.Render("LIFE") + "\n")
	job := l.CurrentJob
	if job == "" {
		job = "none"
	}
	b.WriteString(t.value.Render("Job: "+job) + "\n")
	b.WriteString(t.value.Render("Housing: "+yesNo(l.HasStableHousing, "stable", "unstable")) + "\n")
	b.WriteString(t.value.Render("NPO contact: "+yesNo(l.HasNPOContact, "yes", "no")) + "\n\n")

	b.WriteString(t.label.Render("SKILLS") + "\n")
	b.WriteString(listOrNone(t, l.Skills) + "\n\n")
	b.WriteString(t.label.Render("STATUS") + "\n")
	b.WriteString(listOrNone(t, l.StatusEffects))
	return b.String()
}

func shortLabel(s engine.Stat) string {
	if s == engine.StatCommunityTrust {
		return "Trust"
	}
	return s.Label()
}

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

func listOrNone(t theme, items []string) string {
	if len(items) == 0 {
		return t.muted.Render("(none)")
	}
	return t.value.Render(strings.Join(items, ", "))
}

func (m *model) renderArchive() string {
	w, _ := m.dims()
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.theme.p.Border).Padding(0, 1).Width(w - 2)
	var b strings.Builder
	b.WriteString(m.theme.topBar.Render("ARCHIVE") + "\n")
	if len(m.archiveCards) == 0 {
		msg := "(no finished runs yet)"
		if m.status != "" {
			msg = m.status
		}
		b.WriteString(m.theme.muted.Render(msg) + "\n")
	} else {
		fmt.Fprintf(&b, "%s\n", m.theme.muted.Render(fmt.Sprintf("card %d of %d  [j/k] browse  [Esc] back", m.archiveIndex+1, len(m.archiveCards))))
		b.WriteString(m.renderMarkdown(m.archiveCards[m.archiveIndex], w-4))
	}
	return box.Render(b.String())
}

func (m *model) renderHelp() string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.theme.p.Border).Padding(1, 2).Width(56)
	lines := []string{
		m.theme.topBar.Render("HOW TO PLAY"),
		"",
		"Each day has a morning, an afternoon and an evening.",
		"Pick a choice with 1-9, then press Enter to move on.",
		"Keep hope and health above zero and stay out of deep debt.",
		"",
		"n  new game      t  next theme (" + m.theme.name + ")",
		"a  archive       ?  close help",
		"q  quit",
	}
	return box.Render(strings.Join(lines, "\n"))
}
