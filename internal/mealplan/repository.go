package mealplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoPlan is returned when no plan has been stored for a profile yet.
var ErrNoPlan = errors.New("no stored plan")

// StoredPlan is a persisted plan with the metadata the lifecycle rules need.
type StoredPlan struct {
	ID        string
	ProfileID string
	StartDate string
	EndDate   string
	Timeframe int
	Plan      *Plan
	CreatedAt time.Time
}

// Repository persists generated plans. Plans are regenerated wholesale,
// never patched, so each save is a fresh row and reads take the latest.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new plan Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores a newly generated plan for a profile and returns its id.
func (r *Repository) Save(ctx context.Context, profileID string, plan *Plan, timeframe int) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("marshalling plan: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `INSERT INTO meal_plans
		(id, profile_id, start_date, end_date, timeframe, plan_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, profileID, plan.StartDate, plan.EndDate, timeframe, data, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting plan for profile %s: %w", profileID, err)
	}
	return id, nil
}

// Latest returns the most recently stored plan for a profile.
func (r *Repository) Latest(ctx context.Context, profileID string) (*StoredPlan, error) {
	var (
		sp   StoredPlan
		data []byte
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, profile_id, start_date, end_date,
		timeframe, plan_data, created_at FROM meal_plans
		WHERE profile_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, profileID).
		Scan(&sp.ID, &sp.ProfileID, &sp.StartDate, &sp.EndDate, &sp.Timeframe, &data, &sp.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s: %w", profileID, ErrNoPlan)
		}
		return nil, fmt.Errorf("querying latest plan: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unmarshalling stored plan %s: %w", sp.ID, err)
	}
	sp.Plan = &plan
	return &sp, nil
}

// Stale reports whether a stored plan must be regenerated for the given
// timeframe at the given moment: the timeframe changed or the plan expired.
func (sp *StoredPlan) Stale(timeframe int, now time.Time) bool {
	if sp.Timeframe != timeframe {
		return true
	}
	return sp.EndDate < LocalDate(now)
}
