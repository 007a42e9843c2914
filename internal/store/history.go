// Package store persists simulation history in SQLite: an append-only,
// capped log of rollout summaries.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"warehouse-pricing/internal/model"
)

// maxEntries caps the history; appending beyond it prunes the oldest rows.
const maxEntries = 200

// StepSummary is the per-step slice of a history entry.
type StepSummary struct {
	Step     int     `json:"step"`
	OldPrice float64 `json:"old_price"`
	NewPrice float64 `json:"new_price"`
	Reward   float64 `json:"reward"`
}

// HistoryEntry is one persisted simulation summary. Every field has an
// explicit zero default; readers never probe for optional attributes.
type HistoryEntry struct {
	ID             string        `json:"id"`
	ProductID      int           `json:"product_id"`
	ProductName    string        `json:"product_name"`
	TotalReward    float64       `json:"total_reward"`
	AvgReward      float64       `json:"avg_reward"`
	InitialPrice   float64       `json:"initial_price"`
	FinalPrice     float64       `json:"final_price"`
	Steps          int           `json:"steps"`
	PriceChangePct float64       `json:"price_change_pct"`
	Actions        []StepSummary `json:"actions,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// History is a SQLite-backed simulation log.
type History struct {
	db  *sql.DB
	log *zap.Logger
}

// NewHistory opens (or creates) the history database at path and runs the
// migration.
func NewHistory(path string, log *zap.Logger) (*History, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "history: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}
	h := &History{db: db, log: log}
	if err := h.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

const historyMigration = `
CREATE TABLE IF NOT EXISTS simulations (
	seq              INTEGER PRIMARY KEY AUTOINCREMENT,
	id               TEXT NOT NULL UNIQUE,
	product_id       INTEGER NOT NULL,
	product_name     TEXT NOT NULL,
	total_reward     REAL NOT NULL,
	avg_reward       REAL NOT NULL,
	initial_price    REAL NOT NULL,
	final_price      REAL NOT NULL,
	steps            INTEGER NOT NULL,
	price_change_pct REAL NOT NULL,
	actions          TEXT NOT NULL,
	created_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulations_product_id ON simulations(product_id);
`

func (h *History) migrate(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, historyMigration)
	return eris.Wrap(err, "history: migrate")
}

func (h *History) Close() error {
	return h.db.Close()
}

// Append stores a simulation result and prunes the log back down to the cap,
// oldest entries first.
func (h *History) Append(ctx context.Context, result model.SimulationResult) (*HistoryEntry, error) {
	entry := entryFromResult(result)

	actionsJSON, err := json.Marshal(entry.Actions)
	if err != nil {
		return nil, eris.Wrap(err, "history: marshal actions")
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO simulations
			(id, product_id, product_name, total_reward, avg_reward,
			 initial_price, final_price, steps, price_change_pct, actions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ProductID, entry.ProductName, entry.TotalReward, entry.AvgReward,
		entry.InitialPrice, entry.FinalPrice, entry.Steps, entry.PriceChangePct,
		string(actionsJSON), entry.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "history: insert")
	}

	if _, err := h.db.ExecContext(ctx,
		`DELETE FROM simulations WHERE seq NOT IN
			(SELECT seq FROM simulations ORDER BY seq DESC LIMIT ?)`,
		maxEntries,
	); err != nil {
		return nil, eris.Wrap(err, "history: prune")
	}

	return &entry, nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything up to the cap.
func (h *History) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > maxEntries {
		limit = maxEntries
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, product_id, product_name, total_reward, avg_reward,
			initial_price, final_price, steps, price_change_pct, actions, created_at
		 FROM simulations ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "history: list")
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var actionsJSON string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.TotalReward, &e.AvgReward,
			&e.InitialPrice, &e.FinalPrice, &e.Steps, &e.PriceChangePct, &actionsJSON, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "history: scan")
		}
		if err := json.Unmarshal([]byte(actionsJSON), &e.Actions); err != nil {
			// A corrupt actions blob degrades to a summary-only entry.
			h.log.Warn("dropping unreadable action trace", zap.String("id", e.ID), zap.Error(err))
			e.Actions = nil
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "history: rows")
}

// Count returns the number of stored entries.
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM simulations`).Scan(&n)
	return n, eris.Wrap(err, "history: count")
}

// Clear deletes all history.
func (h *History) Clear(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, `DELETE FROM simulations`)
	return eris.Wrap(err, "history: clear")
}

func entryFromResult(r model.SimulationResult) HistoryEntry {
	steps := make([]StepSummary, len(r.Actions))
	for i, a := range r.Actions {
		steps[i] = StepSummary{
			Step:     a.Step,
			OldPrice: a.OldPrice,
			NewPrice: a.NewPrice,
			Reward:   a.Reward,
		}
	}
	return HistoryEntry{
		ID:             uuid.New().String(),
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		TotalReward:    r.TotalReward,
		AvgReward:      r.AvgReward,
		InitialPrice:   r.InitialPrice,
		FinalPrice:     r.FinalPrice,
		Steps:          r.Steps,
		PriceChangePct: r.PriceChangePct(),
		Actions:        steps,
		CreatedAt:      time.Now().UTC(),
	}
}
