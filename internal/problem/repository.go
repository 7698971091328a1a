package problem

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/messaging"
	"github.com/google/uuid"
)

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{
		db:        db,
		publisher: publisher,
	}
}

// CreateProblem inserts a new report. Status always starts at pending; the
// remediation workflow moves it forward from the backend side only.
func (r *Repository) CreateProblem(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO ecolink.problems
		(id, title, description, location, location_lat, location_lng, danger_level, status, image_url, reporter_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id, title, description, location, location_lat, location_lng, danger_level, status, image_url, reporter_id, created_at, updated_at
	`

	row := r.db.QueryRowContext(ctx, query,
		id,
		req.Title,
		req.Description,
		req.Location,
		req.LocationLat,
		req.LocationLng,
		req.DangerLevel,
		string(StatusPending),
		nullableString(req.ImageURL),
		reporterID,
		now,
	)

	p, err := scanProblem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert problem: %w", err)
	}

	event := messaging.ProblemReportedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventProblemReported),
		Data: messaging.ProblemReportedData{
			ProblemID:   p.ID,
			ReporterID:  p.ReporterID,
			Title:       p.Title,
			Location:    p.Location,
			DangerLevel: string(p.DangerLevel),
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt,
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventProblemReported, event); err != nil {
		// The report is already committed; a lost event is log-worthy, not fatal.
		log.Printf("[ERROR] Failed to publish %s event for problem %s: %v", messaging.EventProblemReported, p.ID, err)
	}

	return p, nil
}

// ListProblems returns the full collection ordered by recency, the default
// key the cache serves to every consumer.
func (r *Repository) ListProblems(ctx context.Context) ([]Problem, error) {
	query := `
		SELECT id, title, description, location, location_lat, location_lng, danger_level, status, image_url, reporter_id, created_at, updated_at
		FROM ecolink.problems
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating problems: %w", err)
	}

	return problems, nil
}

func (r *Repository) GetProblem(ctx context.Context, id string) (*Problem, error) {
	query := `
		SELECT id, title, description, location, location_lat, location_lng, danger_level, status, image_url, reporter_id, created_at, updated_at
		FROM ecolink.problems
		WHERE id = $1
	`

	p, err := scanProblem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProblem(row rowScanner) (*Problem, error) {
	var p Problem
	var lat, lng sql.NullFloat64
	var imageURL sql.NullString
	var dangerLevel, status string

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Location,
		&lat,
		&lng,
		&dangerLevel,
		&status,
		&imageURL,
		&p.ReporterID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		p.LocationLat = &lat.Float64
	}
	if lng.Valid {
		p.LocationLng = &lng.Float64
	}
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}

	// Store text outside the known sets degrades to the unknown variant.
	p.DangerLevel = ParseDangerLevel(dangerLevel)
	p.Status = ParseStatus(status)

	return &p, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
