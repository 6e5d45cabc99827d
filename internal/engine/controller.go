package engine

import (
	"errors"
	"fmt"
	"log/slog"
)

// Presenter is the display side of the engine. The controller calls it
// synchronously and expects the caller to come back through SubmitChoice
// or Acknowledge.
type Presenter interface {
	PresentEvent(ev EventDefinition)
	PresentConsequence(lines []string, educational string)
	ReportGameOver(reason string)
}

// ChoiceRecord is handed to observers after a choice resolves.
type ChoiceRecord struct {
	Day         int
	Phase       Phase
	EventID     string
	EventTitle  string
	ChoiceIndex int
	ChoiceText  string
	Lines       []string
	Next        string
	Ledger      Ledger
}

// Observer receives read-only notifications, e.g. for a run journal.
type Observer interface {
	GameStarted(game int, l Ledger)
	DayStarted(day int, l Ledger)
	ChoiceResolved(rec ChoiceRecord)
	GameEnded(over GameOver)
}

// DayHook runs at the start of every day, including the first.
type DayHook func(day int, l *Ledger)

// DailyCost charges amount at the start of every day after the first.
func DailyCost(amount float64) DayHook {
	return func(day int, l *Ledger) {
		if day > 1 {
			l.ApplyDelta(StatMoney, -amount)
		}
	}
}

var (
	ErrNotStarted           = errors.New("game not started")
	ErrGameOver             = errors.New("game is over")
	ErrNoPendingEvent       = errors.New("no event awaiting a choice")
	ErrChoiceOutOfRange     = errors.New("choice index out of range")
	ErrStaleEvent           = errors.New("choice submitted for an event that is not pending")
	ErrNothingToAcknowledge = errors.New("no consequence awaiting acknowledgement")
	ErrNoEvents             = errors.New("no eligible events in any phase")
	ErrUnknownEvent         = errors.New("unknown event")
)

// Controller owns the day/phase state machine and the ledger of one player.
type Controller struct {
	catalog   *Catalog
	presenter Presenter
	logger    *slog.Logger
	seed      RunSeed
	start     StartingStats
	bootstrap string
	filters   []EventFilter
	dayHooks  []DayHook
	observers []Observer

	customSelector EventSelector
	selector       EventSelector

	games        int
	ledger       Ledger
	phase        Phase
	state        RunState
	current      string
	pendingChain string
	history      EventHistory
	over         *GameOver
}

// Option configures a Controller.
type Option func(*Controller)

// WithSeed sets the run seed used for event selection.
func WithSeed(seed RunSeed) Option { return func(c *Controller) { c.seed = seed } }

// WithSelector replaces the seeded random selector.
func WithSelector(s EventSelector) Option { return func(c *Controller) { c.customSelector = s } }

func WithStartingStats(s StartingStats) Option { return func(c *Controller) { c.start = s } }

// WithBootstrapEvent presents id instead of a random pick on the first morning.
func WithBootstrapEvent(id string) Option { return func(c *Controller) { c.bootstrap = id } }

func WithFilter(f EventFilter) Option { return func(c *Controller) { c.filters = append(c.filters, f) } }
func WithDayHook(h DayHook) Option    { return func(c *Controller) { c.dayHooks = append(c.dayHooks, h) } }
func WithObserver(o Observer) Option  { return func(c *Controller) { c.observers = append(c.observers, o) } }
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController wires a controller to its catalog and presenter. The game
// does not start until StartGame is called.
func NewController(catalog *Catalog, presenter Presenter, opts ...Option) (*Controller, error) {
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if presenter == nil {
		return nil, errors.New("presenter is nil")
	}
	c := &Controller{
		catalog:   catalog,
		presenter: presenter,
		logger:    slog.Default(),
		start:     DefaultStartingStats(),
		state:     StateIdle,
		phase:     PhaseMorning,
		history:   EventHistory{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.seed.Text == "" {
		c.seed, _ = NewRunSeed("daybreak")
	}
	if c.bootstrap != "" {
		if _, ok := catalog.Lookup(c.bootstrap); !ok {
			return nil, fmt.Errorf("%w: bootstrap event %q", ErrUnknownEvent, c.bootstrap)
		}
	}
	c.ledger = NewLedger(c.start)
	return c, nil
}

func (c *Controller) State() RunState   { return c.state }
func (c *Controller) Phase() Phase      { return c.phase }
func (c *Controller) Catalog() *Catalog { return c.catalog }
func (c *Controller) Games() int        { return c.games }

// Ledger returns a copy of the current player state.
func (c *Controller) Ledger() Ledger { return c.ledger.Clone() }

// CurrentEvent returns the event awaiting a choice or an acknowledgement.
func (c *Controller) CurrentEvent() (EventDefinition, bool) {
	if c.current == "" {
		return EventDefinition{}, false
	}
	return c.catalog.Lookup(c.current)
}

// GameOver returns the end-of-run record once the game is over.
func (c *Controller) GameOver() (GameOver, bool) {
	if c.over == nil {
		return GameOver{}, false
	}
	return *c.over, true
}

// StartGame resets the ledger and presents the first morning event. It may
// be called at any time to restart.
func (c *Controller) StartGame() error {
	c.games++
	c.ledger = NewLedger(c.start)
	c.phase = PhaseMorning
	c.state = StateAwaitingEvent
	c.current = ""
	c.pendingChain = ""
	c.history = EventHistory{}
	c.over = nil
	c.selector = c.customSelector
	if c.selector == nil {
		c.selector = NewRandomSelector(c.seed.Stream(fmt.Sprintf("game:%d", c.games)).Child("select"))
	}
	c.logger.Info("game started", "game", c.games, "seed", c.seed.Text)
	for _, o := range c.observers {
		o.GameStarted(c.games, c.ledger.Clone())
	}
	c.enterDay()

	if c.bootstrap != "" {
		ev, _ := c.catalog.Lookup(c.bootstrap)
		c.present(ev)
		return nil
	}
	return c.fillPhase()
}

// SubmitChoice resolves choice index of the pending event.
func (c *Controller) SubmitChoice(index int) error {
	if err := c.requireState(StateAwaitingChoice, ErrNoPendingEvent); err != nil {
		return err
	}
	ev, ok := c.catalog.Lookup(c.current)
	if !ok {
		return c.violation(fmt.Errorf("%w: %q", ErrUnknownEvent, c.current))
	}
	if index < 0 || index >= len(ev.Choices) {
		return c.violation(fmt.Errorf("%w: index %d, event %q has %d choices", ErrChoiceOutOfRange, index, ev.ID, len(ev.Choices)))
	}
	choice := ev.Choices[index]
	day := c.ledger.CurrentDay
	next, res := ResolveChoice(c.ledger, choice)
	c.ledger = next
	c.pendingChain = res.Next
	c.state = StateAwaitingAcknowledge

	rec := ChoiceRecord{
		Day:         day,
		Phase:       c.phase,
		EventID:     ev.ID,
		EventTitle:  ev.Title,
		ChoiceIndex: index,
		ChoiceText:  choice.Text,
		Lines:       append([]string(nil), res.Lines...),
		Next:        res.Next,
		Ledger:      c.ledger.Clone(),
	}
	c.logger.Info("choice resolved", "event", ev.ID, "choice", index, "changes", len(res.Lines), "chain", res.Next)
	for _, o := range c.observers {
		o.ChoiceResolved(rec)
	}
	c.presenter.PresentConsequence(res.Lines, choice.Educational)
	return nil
}

// SubmitChoiceFor is SubmitChoice with a guard against stale input for an
// event that is no longer pending.
func (c *Controller) SubmitChoiceFor(eventID string, index int) error {
	if err := c.requireState(StateAwaitingChoice, ErrNoPendingEvent); err != nil {
		return err
	}
	if eventID != c.current {
		return c.violation(fmt.Errorf("%w: got %q, pending %q", ErrStaleEvent, eventID, c.current))
	}
	return c.SubmitChoice(index)
}

// Acknowledge closes the consequence of the last choice: the run ends, a
// chained event is shown in the same phase, or the day moves on.
func (c *Controller) Acknowledge() error {
	if err := c.requireState(StateAwaitingAcknowledge, ErrNothingToAcknowledge); err != nil {
		return err
	}
	if reason, over := CheckGameOver(c.ledger); over {
		c.endGame(reason)
		return nil
	}
	if chain := c.pendingChain; chain != "" {
		c.pendingChain = ""
		ev, ok := c.catalog.Lookup(chain)
		if ok {
			c.present(ev)
			return nil
		}
		c.logger.Warn("chained event missing, advancing", "event", chain)
	}
	c.advancePhase()
	return c.fillPhase()
}

func (c *Controller) requireState(want RunState, wrongState error) error {
	switch c.state {
	case want:
		return nil
	case StateIdle:
		return c.violation(ErrNotStarted)
	case StateGameOver:
		return c.violation(ErrGameOver)
	default:
		return c.violation(fmt.Errorf("%w (state %s)", wrongState, c.state))
	}
}

func (c *Controller) violation(err error) error {
	c.logger.Error("contract violation", "err", err, "state", c.state, "phase", c.phase, "day", c.ledger.CurrentDay)
	return err
}

// fillPhase selects an event for the current phase, moving on past empty
// phases. A full day of empty phases leaves the controller waiting.
func (c *Controller) fillPhase() error {
	for attempt := 0; attempt < len(AllPhases); attempt++ {
		if attempt > 0 {
			c.advancePhase()
		}
		ev, ok := c.selector.SelectEvent(c.catalog, c.phase, c.activeFilters()...)
		if ok {
			c.present(ev)
			return nil
		}
		c.logger.Warn("no events for phase, advancing", "phase", c.phase, "day", c.ledger.CurrentDay)
	}
	c.state = StateAwaitingEvent
	c.logger.Error("catalog exhausted", "day", c.ledger.CurrentDay)
	return ErrNoEvents
}

func (c *Controller) activeFilters() []EventFilter {
	filters := []EventFilter{EligibleFor(c.ledger), NotFired(c.history)}
	return append(filters, c.filters...)
}

func (c *Controller) present(ev EventDefinition) {
	c.current = ev.ID
	c.state = StateAwaitingChoice
	c.history.record(ev.ID)
	c.presenter.PresentEvent(ev)
}

func (c *Controller) advancePhase() {
	next, wrapped := c.phase.Next()
	c.current = ""
	c.state = StateAwaitingEvent
	c.phase = next
	if wrapped {
		c.ledger.CurrentDay++
		c.enterDay()
	}
	c.logger.Info("phase entered", "phase", c.phase, "day", c.ledger.CurrentDay)
}

func (c *Controller) enterDay() {
	for _, hook := range c.dayHooks {
		hook(c.ledger.CurrentDay, &c.ledger)
	}
	for _, o := range c.observers {
		o.DayStarted(c.ledger.CurrentDay, c.ledger.Clone())
	}
}

func (c *Controller) endGame(reason GameOverReason) {
	c.state = StateGameOver
	c.current = ""
	c.pendingChain = ""
	over := GameOver{Reason: reason, Day: c.ledger.CurrentDay, Ledger: c.ledger.Clone()}
	c.over = &over
	c.logger.Info("game over", "reason", reason, "day", over.Day)
	for _, o := range c.observers {
		o.GameEnded(over)
	}
	c.presenter.ReportGameOver(reason.Message())
}
