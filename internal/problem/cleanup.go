package problem

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// RetentionPeriod defines how long cancelled problems are retained (180 days)
const RetentionPeriod = 180 * 24 * time.Hour

// CleanupService permanently deletes cancelled problems past the retention
// window. Resolved problems are kept indefinitely for the public record.
type CleanupService struct {
	db *sql.DB
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(db *sql.DB) *CleanupService {
	return &CleanupService{db: db}
}

// GetExpiredProblemsCount returns how many problems are eligible for purge.
func (s *CleanupService) GetExpiredProblemsCount(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)

	var count int
	query := `
		SELECT COUNT(*)
		FROM ecolink.problems
		WHERE status = 'cancelled'
		AND updated_at < $1
	`

	err := s.db.QueryRowContext(ctx, query, cutoffDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired problems: %w", err)
	}

	return count, nil
}

// CleanupExpiredProblems deletes cancelled problems whose last update is
// older than the retention period.
func (s *CleanupService) CleanupExpiredProblems(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of cancelled problems last updated before %s", cutoffDate.Format(time.RFC3339))

	query := `
		DELETE FROM ecolink.problems
		WHERE status = 'cancelled'
		AND updated_at < $1
	`

	result, err := s.db.ExecContext(ctx, query, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired problems: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Printf("Successfully cleaned up %d cancelled problems", rows)
	return int(rows), nil
}
