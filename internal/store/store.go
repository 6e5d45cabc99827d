package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/daybreak/internal/engine"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error { return d.sql.Close() }

// Open connects to postgres. gorm's own logger is silenced so it does not
// write over the TUI.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, wrap(err, "sql handle")
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Run is one game of a session.
type Run struct {
	ID           uuid.UUID
	Seed         string
	Game         int
	RulesVersion string
	CurrentDay   int
}

// Decision is a resolved choice.
type Decision struct {
	ID          uuid.UUID
	RunID       uuid.UUID
	Day         int
	Phase       string
	EventID     string
	EventTitle  string
	ChoiceIndex int
	ChoiceText  string
	LinesJSON   json.RawMessage
	Chain       string
	LedgerJSON  json.RawMessage
}

type ArchiveCard struct {
	ID       uuid.UUID
	RunID    uuid.UUID
	Day      int
	Reason   string
	Markdown string
}

// NewDecision flattens an engine record for storage.
func NewDecision(runID uuid.UUID, rec engine.ChoiceRecord) (Decision, error) {
	lines := rec.Lines
	if lines == nil {
		lines = []string{}
	}
	linesB, err := json.Marshal(lines)
	if err != nil {
		return Decision{}, wrap(err, "encode lines")
	}
	ledgerB, err := json.Marshal(rec.Ledger)
	if err != nil {
		return Decision{}, wrap(err, "encode ledger")
	}
	return Decision{
		ID:          uuid.New(),
		RunID:       runID,
		Day:         rec.Day,
		Phase:       string(rec.Phase),
		EventID:     rec.EventID,
		EventTitle:  rec.EventTitle,
		ChoiceIndex: rec.ChoiceIndex,
		ChoiceText:  rec.ChoiceText,
		LinesJSON:   linesB,
		Chain:       rec.Next,
		LedgerJSON:  ledgerB,
	}, nil
}

type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, run Run) error {
	err := r.db.gorm.WithContext(ctx).Exec(`INSERT INTO runs(id, seed, game, rules_version, current_day) VALUES (?,?,?,?,?)`,
		run.ID, run.Seed, run.Game, run.RulesVersion, run.CurrentDay).Error
	return wrap(err, "insert run")
}

func (r *RunRepo) UpdateDay(ctx context.Context, id uuid.UUID, day int) error {
	err := r.db.gorm.WithContext(ctx).Exec(`UPDATE runs SET current_day = ? WHERE id = ?`, day, id).Error
	return wrap(err, "update run day")
}

// Finish stamps the end of a run with its reason and final ledger.
func (r *RunRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, over engine.GameOver) error {
	ledgerB, err := json.Marshal(over.Ledger)
	if err != nil {
		return wrap(err, "encode ledger")
	}
	err = tx.WithContext(ctx).Exec(`UPDATE runs SET ended_at = now(), end_reason = ?, current_day = ?, final_ledger = ? WHERE id = ?`,
		string(over.Reason), over.Day, ledgerB, id).Error
	return wrap(err, "finish run")
}

type DecisionRepo struct{ db *DB }

func NewDecisionRepo(db *DB) *DecisionRepo { return &DecisionRepo{db: db} }

func (dr *DecisionRepo) Insert(ctx context.Context, d Decision) error {
	err := dr.db.gorm.WithContext(ctx).Exec(`INSERT INTO decisions(id, run_id, day, phase, event_id, event_title, choice_index, choice_text, lines, chain, ledger) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		d.ID, d.RunID, d.Day, d.Phase, d.EventID, d.EventTitle, d.ChoiceIndex, d.ChoiceText, []byte(d.LinesJSON), d.Chain, []byte(d.LedgerJSON)).Error
	return wrap(err, "insert decision")
}

type ArchiveRepo struct{ db *DB }

func NewArchiveRepo(db *DB) *ArchiveRepo { return &ArchiveRepo{db: db} }

func (ar *ArchiveRepo) Insert(ctx context.Context, tx *gorm.DB, card ArchiveCard) error {
	err := tx.WithContext(ctx).Exec(`INSERT INTO archive_cards(id, run_id, day, reason, card_md) VALUES (?,?,?,?,?)`,
		card.ID, card.RunID, card.Day, card.Reason, card.Markdown).Error
	return wrap(err, "insert archive card")
}

// Recent returns the newest archive cards first.
func (ar *ArchiveRepo) Recent(ctx context.Context, limit int) ([]ArchiveCard, error) {
	rows, err := ar.db.gorm.WithContext(ctx).Raw(`SELECT id, run_id, day, reason, card_md FROM archive_cards ORDER BY created_at DESC LIMIT ?`, limit).Rows()
	if err != nil {
		return nil, wrap(err, "list archive cards")
	}
	defer rows.Close()
	var out []ArchiveCard
	for rows.Next() {
		var c ArchiveCard
		if err := rows.Scan(&c.ID, &c.RunID, &c.Day, &c.Reason, &c.Markdown); err != nil {
			return nil, wrap(err, "scan archive card")
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err(), "list archive cards")
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
