package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nutriplan/internal/catalog"
)

// Repository is a database-backed store for user profiles.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the profile for the given id.
func (r *Repository) Get(ctx context.Context, id string) (*Profile, error) {
	var (
		p          Profile
		allergens  string
		conditions string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, calorie_needs, protein_needed,
		carbs_needed, fats_needed, goal, eating_style, allergens, health_conditions,
		timeframe, meals_per_day FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.CalorieNeeds, &p.ProteinNeeded, &p.CarbsNeeded, &p.FatsNeeded,
			&p.Goal, &p.EatingStyle, &allergens, &conditions, &p.Timeframe, &p.MealsPerDay)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	// Stored as JSON arrays, but upstream writers have been known to leave
	// plain strings behind. LooseList tolerates both.
	p.Allergens = catalog.LooseList(allergens)
	p.HealthConditions = catalog.LooseList(conditions)
	return &p, nil
}

// Upsert inserts or replaces a profile.
func (r *Repository) Upsert(ctx context.Context, p *Profile) error {
	allergens, err := json.Marshal(p.Allergens)
	if err != nil {
		return fmt.Errorf("marshalling allergens: %w", err)
	}
	conditions, err := json.Marshal(p.HealthConditions)
	if err != nil {
		return fmt.Errorf("marshalling health conditions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR REPLACE INTO profiles
		(id, calorie_needs, protein_needed, carbs_needed, fats_needed, goal,
		eating_style, allergens, health_conditions, timeframe, meals_per_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CalorieNeeds, p.ProteinNeeded, p.CarbsNeeded, p.FatsNeeded, p.Goal,
		p.EatingStyle, string(allergens), string(conditions), p.Timeframe, p.MealsPerDay)
	if err != nil {
		return fmt.Errorf("upserting profile %s: %w", p.ID, err)
	}
	return nil
}
