// Package db archives analysis verdicts in Turso (libsql) so they can be
// queried later for player history and leaderboards.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Archive wraps a Turso connection holding past match analyses.
type Archive struct {
	db *sql.DB
}

// NewArchive connects to Turso and verifies the connection.
func NewArchive(url, authToken string) (*Archive, error) {
	connStr := url
	if authToken != "" {
		connStr = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Turso: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Turso: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the Turso connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Init creates the archive schema if it does not exist.
func (a *Archive) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS match_analyses (
			match_id TEXT NOT NULL,
			puuid TEXT NOT NULL,
			player_name TEXT NOT NULL,
			win INTEGER NOT NULL,
			score REAL NOT NULL,
			game_mode TEXT NOT NULL,
			duration_min REAL NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (match_id, puuid)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_analyses_puuid ON match_analyses(puuid, created_at)`,
	}

	for _, query := range queries {
		if _, err := a.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create archive schema: %w", err)
		}
	}
	return nil
}

// AnalysisRecord is one archived verdict row.
type AnalysisRecord struct {
	MatchID     string
	PUUID       string
	PlayerName  string
	Win         bool
	Score       float64
	GameMode    string
	DurationMin float64
	CreatedAt   time.Time
}

// RecordAnalyses inserts the verdict rows for one match in a single
// transaction. Re-analyzing a match replaces the previous rows.
func (a *Archive) RecordAnalyses(ctx context.Context, records []AnalysisRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO match_analyses
		(match_id, puuid, player_name, win, score, game_mode, duration_min, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	for _, rec := range records {
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			rec.MatchID, rec.PUUID, rec.PlayerName, rec.Win, rec.Score,
			rec.GameMode, rec.DurationMin, createdAt.Format(time.RFC3339)); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to insert analysis row: %w", err)
		}
	}
	stmt.Close()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// RecentByPlayer returns the newest archived verdicts for one player.
func (a *Archive) RecentByPlayer(ctx context.Context, puuid string, limit int) ([]AnalysisRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT match_id, puuid, player_name, win, score, game_mode, duration_min, created_at
		FROM match_analyses
		WHERE puuid = ?
		ORDER BY created_at DESC
		LIMIT ?`, puuid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var createdAt string
		if err := rows.Scan(&rec.MatchID, &rec.PUUID, &rec.PlayerName, &rec.Win,
			&rec.Score, &rec.GameMode, &rec.DurationMin, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AverageScore returns a player's mean score and the number of archived
// matches it covers.
func (a *Archive) AverageScore(ctx context.Context, puuid string) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := a.db.QueryRowContext(ctx,
		`SELECT AVG(score), COUNT(*) FROM match_analyses WHERE puuid = ?`, puuid).
		Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query average score: %w", err)
	}
	return avg.Float64, count, nil
}
