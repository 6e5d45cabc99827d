package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaanHessen/daybreak/internal/engine"
)

// Writer is the persistence side of a Journal.
type Writer interface {
	CreateRun(ctx context.Context, run Run) error
	UpdateRunDay(ctx context.Context, id uuid.UUID, day int) error
	InsertDecision(ctx context.Context, d Decision) error
	// FinishRun closes the run and stores its archive card atomically.
	FinishRun(ctx context.Context, id uuid.UUID, over engine.GameOver, card ArchiveCard) error
	RecentArchive(ctx context.Context, limit int) ([]ArchiveCard, error)
}

type postgresWriter struct {
	db        *DB
	runs      *RunRepo
	decisions *DecisionRepo
	archive   *ArchiveRepo
}

// NewWriter returns a Writer backed by postgres.
func NewWriter(db *DB) Writer {
	return &postgresWriter{
		db:        db,
		runs:      NewRunRepo(db),
		decisions: NewDecisionRepo(db),
		archive:   NewArchiveRepo(db),
	}
}

func (w *postgresWriter) CreateRun(ctx context.Context, run Run) error { return w.runs.Create(ctx, run) }

func (w *postgresWriter) UpdateRunDay(ctx context.Context, id uuid.UUID, day int) error {
	return w.runs.UpdateDay(ctx, id, day)
}

func (w *postgresWriter) InsertDecision(ctx context.Context, d Decision) error {
	return w.decisions.Insert(ctx, d)
}

func (w *postgresWriter) FinishRun(ctx context.Context, id uuid.UUID, over engine.GameOver, card ArchiveCard) error {
	return w.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := w.runs.Finish(ctx, tx, id, over); err != nil {
			return err
		}
		return w.archive.Insert(ctx, tx, card)
	})
}

func (w *postgresWriter) RecentArchive(ctx context.Context, limit int) ([]ArchiveCard, error) {
	return w.archive.Recent(ctx, limit)
}

// CardRenderer builds the archive markdown for a finished run.
type CardRenderer func(over engine.GameOver, decisions []engine.ChoiceRecord) string

// Journal records runs as an engine.Observer. The first write error stops
// further writes and is kept for Err; the game itself carries on.
type Journal struct {
	ctx          context.Context
	w            Writer
	seed         string
	rulesVersion string
	render       CardRenderer
	logger       *slog.Logger

	runID     uuid.UUID
	day       int
	decisions []engine.ChoiceRecord
	err       error
}

type JournalOption func(*Journal)

func WithCardRenderer(r CardRenderer) JournalOption { return func(j *Journal) { j.render = r } }

func WithJournalLogger(l *slog.Logger) JournalOption {
	return func(j *Journal) {
		if l != nil {
			j.logger = l
		}
	}
}

func NewJournal(ctx context.Context, w Writer, seed, rulesVersion string, opts ...JournalOption) *Journal {
	j := &Journal{
		ctx:          ctx,
		w:            w,
		seed:         seed,
		rulesVersion: rulesVersion,
		logger:       slog.Default(),
		render:       func(over engine.GameOver, _ []engine.ChoiceRecord) string { return over.Reason.Message() },
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Err returns the first write failure, if any.
func (j *Journal) Err() error { return j.err }

// RunID is the id of the run being recorded, uuid.Nil before the first game.
func (j *Journal) RunID() uuid.UUID { return j.runID }

func (j *Journal) GameStarted(game int, l engine.Ledger) {
	j.runID = uuid.New()
	j.day = l.CurrentDay
	j.decisions = nil
	j.record(j.w.CreateRun(j.ctx, Run{
		ID:           j.runID,
		Seed:         j.seed,
		Game:         game,
		RulesVersion: j.rulesVersion,
		CurrentDay:   l.CurrentDay,
	}))
}

func (j *Journal) DayStarted(day int, _ engine.Ledger) {
	if !j.active() {
		return
	}
	j.advanceDay(day)
}

func (j *Journal) ChoiceResolved(rec engine.ChoiceRecord) {
	if !j.active() {
		return
	}
	j.decisions = append(j.decisions, rec)
	d, err := NewDecision(j.runID, rec)
	if err != nil {
		j.record(err)
		return
	}
	j.record(j.w.InsertDecision(j.ctx, d))
	// day-skip outcomes move the calendar without a DayStarted
	if j.active() {
		j.advanceDay(rec.Ledger.CurrentDay)
	}
}

// advanceDay stores day when it is past the last stored day.
func (j *Journal) advanceDay(day int) {
	if day <= j.day {
		return
	}
	j.day = day
	j.record(j.w.UpdateRunDay(j.ctx, j.runID, day))
}

func (j *Journal) GameEnded(over engine.GameOver) {
	if !j.active() {
		return
	}
	card := ArchiveCard{
		ID:       uuid.New(),
		RunID:    j.runID,
		Day:      over.Day,
		Reason:   string(over.Reason),
		Markdown: j.render(over, j.decisions),
	}
	j.record(j.w.FinishRun(j.ctx, j.runID, over, card))
}

// Archive returns the markdown of the newest archive cards.
func (j *Journal) Archive(ctx context.Context, limit int) ([]string, error) {
	cards, err := j.w.RecentArchive(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Markdown
	}
	return out, nil
}

func (j *Journal) active() bool { return j.err == nil && j.runID != uuid.Nil }

func (j *Journal) record(err error) {
	if err == nil || j.err != nil {
		return
	}
	j.err = err
	j.logger.Warn("run journal disabled", "err", err, "run", j.runID)
}
