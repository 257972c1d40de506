package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"finance-advisor/domain"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS advice_history (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    query       TEXT NOT NULL,
    route       TEXT NOT NULL,
    result_json TEXT NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_advice_history_user ON advice_history(user_id, created_at DESC);
`

// SQLiteAdviceRepository persists advisory results to a local sqlite file.
type SQLiteAdviceRepository struct {
	db *sql.DB
}

// OpenSQLiteAdviceRepository opens or creates the history database.
func OpenSQLiteAdviceRepository(dbPath string) (*SQLiteAdviceRepository, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &SQLiteAdviceRepository{db: db}, nil
}

func (r *SQLiteAdviceRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteAdviceRepository) Save(ctx context.Context, record AdviceRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO advice_history (id, user_id, query, route, result_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		record.ID, record.UserID, record.Query, record.Route,
		string(resultJSON), record.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (r *SQLiteAdviceRepository) Recent(ctx context.Context, userID string, limit int) ([]AdviceRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, query, route, result_json, created_at FROM advice_history WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []AdviceRecord
	for rows.Next() {
		var rec AdviceRecord
		var resultJSON, createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query, &rec.Route, &resultJSON, &createdAt); err != nil {
			return nil, err
		}
		var result domain.AdvisorResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, err
		}
		rec.Result = result
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
