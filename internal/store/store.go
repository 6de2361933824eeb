package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/horary/go-engine/internal/chart"
	"github.com/danielpatrickdp/horary/go-engine/internal/judge"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS judgments (
	judgment_id     TEXT PRIMARY KEY,
	category        TEXT,
	significator_a  TEXT NOT NULL,
	significator_b  TEXT NOT NULL,
	verdict         TEXT NOT NULL,
	confidence      REAL NOT NULL,
	perfection_type TEXT NOT NULL,
	score           REAL NOT NULL,
	context_hash    TEXT,
	ledger_json     TEXT,
	reasoning_json  TEXT,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	judgment_id   TEXT NOT NULL,
	context_hash  TEXT,
	trigger_type  TEXT NOT NULL,
	inputs_json   TEXT,
	findings      TEXT,
	decision      TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (judgment_id) REFERENCES judgments(judgment_id)
);

CREATE INDEX IF NOT EXISTS idx_judgments_created ON judgments(created_at);
`

// #endregion schema

// #region store-struct
// Store persists judgments in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dbPath == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region save-judgment
// SaveJudgment assigns an ID and timestamp when missing and inserts the record.
func (s *Store) SaveJudgment(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO judgments (judgment_id, category, significator_a, significator_b, verdict, confidence,
		 perfection_type, score, context_hash, ledger_json, reasoning_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, nullIfEmpty(rec.Category), string(rec.SignificatorA), string(rec.SignificatorB),
		string(rec.Verdict), rec.Confidence, string(rec.PerfectionType), rec.Score,
		nullIfEmpty(rec.ContextHash), nullIfEmpty(rec.LedgerJSON), nullIfEmpty(rec.ReasoningJSON),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert judgment: %w", err)
	}
	return rec, nil
}

// #endregion save-judgment

// #region get-judgment
const selectColumns = `SELECT judgment_id, category, significator_a, significator_b, verdict, confidence,
	perfection_type, score, context_hash, ledger_json, reasoning_json, created_at FROM judgments`

// GetJudgment retrieves one judgment by ID.
func (s *Store) GetJudgment(id string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRow(selectColumns+` WHERE judgment_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get judgment %s: %w", id, err)
	}
	return rec, nil
}

// #endregion get-judgment

// #region list-recent
// ListRecent returns the most recent judgments, newest first.
func (s *Store) ListRecent(limit int) ([]Record, error) {
	rows, err := s.db.Query(selectColumns+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list judgments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-recent

// #region helpers
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var category, contextHash, ledger, reasoning sql.NullString
	var a, b, verdict, ptype, createdStr string

	err := row.Scan(&rec.ID, &category, &a, &b, &verdict, &rec.Confidence,
		&ptype, &rec.Score, &contextHash, &ledger, &reasoning, &createdStr)
	if err != nil {
		return Record{}, err
	}
	rec.Category = category.String
	rec.SignificatorA = chart.Planet(a)
	rec.SignificatorB = chart.Planet(b)
	rec.Verdict = judge.Verdict(verdict)
	rec.PerfectionType = judge.PerfectionType(ptype)
	rec.ContextHash = contextHash.String
	rec.LedgerJSON = ledger.String
	rec.ReasoningJSON = reasoning.String
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
