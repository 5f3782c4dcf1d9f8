package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// statsRepo implements StatsRepo over raw SQL.
type statsRepo struct {
	db *sql.DB
}

func (r *statsRepo) SaveUserStats(ctx context.Context, stats UserStats) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_stats
			(user_id, level, total_cases, correct_diagnoses, correct_triages, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			level = excluded.level,
			total_cases = excluded.total_cases,
			correct_diagnoses = excluded.correct_diagnoses,
			correct_triages = excluded.correct_triages,
			updated_at = excluded.updated_at`,
		stats.UserID, stats.Level, stats.TotalCases,
		stats.CorrectDiagnoses, stats.CorrectTriages, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

func (r *statsRepo) GetUserStats(ctx context.Context, userID string) (*UserStats, error) {
	var s UserStats
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, level, total_cases, correct_diagnoses, correct_triages, updated_at
		FROM user_stats WHERE user_id = ?`, userID,
	).Scan(&s.UserID, &s.Level, &s.TotalCases, &s.CorrectDiagnoses,
		&s.CorrectTriages, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return &s, nil
}

func (r *statsRepo) ResetUserStats(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_stats WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("reset user stats: %w", err)
	}
	return nil
}
