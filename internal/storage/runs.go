package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one finished worm session: how long it lasted and what the worm did.
type Run struct {
	ID        int64
	GameID    string
	Seed      int64
	Rows      int
	Cols      int
	Ticks     int
	Moves     int
	Restarts  int
	FoodEaten int
	MaxLength int
	Score     int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates every stored run of one game.
type RunStats struct {
	GameID        string
	Runs          int
	HighScore     int
	AvgScore      float64
	TotalMoves    int64
	TotalRestarts int64
	LongestWorm   int
	LastPlayed    time.Time
}

// SaveRun records a finished run and, when it scored, its score.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(r Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO runs
		 (game_id, seed, grid_rows, grid_cols, ticks, moves, restarts, food_eaten, max_length, score, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.Rows, r.Cols, r.Ticks, r.Moves, r.Restarts,
		r.FoodEaten, r.MaxLength, r.Score, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if r.Score > 0 {
		if err := insertScore(tx, r.GameID, r.Score); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the newest runs for gameID, newest first.
// An empty gameID returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, grid_rows, grid_cols, ticks, moves, restarts,
		        food_eaten, max_length, score, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Seed, &r.Rows, &r.Cols, &r.Ticks, &r.Moves, &r.Restarts,
			&r.FoodEaten, &r.MaxLength, &r.Score, &durationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats returns aggregated statistics for gameID.
// A game with no runs yields zero counters and no error.
func (s *Store) Stats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(moves), 0), COALESCE(SUM(restarts), 0), COALESCE(MAX(max_length), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore,
		&stats.TotalMoves, &stats.TotalRestarts, &stats.LongestWorm)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
