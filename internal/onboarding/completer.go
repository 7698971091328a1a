package onboarding

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/messaging"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PreferencesRepository persists finished wizard selections to the user
// preferences table and announces the completion on the event bus.
type PreferencesRepository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewPreferencesRepository(db *sql.DB, publisher messaging.PublisherInterface) *PreferencesRepository {
	return &PreferencesRepository{
		db:        db,
		publisher: publisher,
	}
}

// Ensure PreferencesRepository implements Completer
var _ Completer = (*PreferencesRepository)(nil)

// Complete upserts the user's selections; re-running onboarding replaces
// the previous preference set.
func (r *PreferencesRepository) Complete(ctx context.Context, userID string, sel Selections) error {
	now := time.Now()

	query := `
		INSERT INTO ecolink.user_preferences (id, user_id, interests, activities, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET interests = $3, activities = $4, completed_at = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		pq.Array(sel.Interests),
		pq.Array(sel.Activities),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to store user preferences: %w", err)
	}

	event := messaging.OnboardingCompletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOnboardingCompleted),
		Data: messaging.OnboardingCompletedData{
			UserID:      userID,
			Interests:   sel.Interests,
			Activities:  sel.Activities,
			CompletedAt: now.UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventOnboardingCompleted, event); err != nil {
		log.Printf("[ERROR] Failed to publish %s event for user %s: %v", messaging.EventOnboardingCompleted, userID, err)
	}

	return nil
}
