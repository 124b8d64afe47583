package meallog

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is a database-backed store for meal log entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new entry and returns its id.
func (r *Repository) Insert(ctx context.Context, e Entry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO meal_logs
		(profile_id, dish_id, name, meal_type, meal_date, serving_size, calories, protein, carbs, fat)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ProfileID, e.DishID, e.Name, e.MealType, e.MealDate, e.ServingSize,
		e.Nutrition.Calories, e.Nutrition.Protein, e.Nutrition.Carbs, e.Nutrition.Fat)
	if err != nil {
		return 0, fmt.Errorf("inserting meal log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted meal log id: %w", err)
	}
	return id, nil
}

// Update rewrites the quantity fields of an existing entry.
func (r *Repository) Update(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `UPDATE meal_logs SET serving_size = ?,
		calories = ?, protein = ?, carbs = ?, fat = ? WHERE id = ?`,
		e.ServingSize, e.Nutrition.Calories, e.Nutrition.Protein,
		e.Nutrition.Carbs, e.Nutrition.Fat, e.ID)
	if err != nil {
		return fmt.Errorf("updating meal log %d: %w", e.ID, err)
	}
	return nil
}

// ListByProfile returns all entries for a profile, newest date first.
func (r *Repository) ListByProfile(ctx context.Context, profileID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, profile_id, dish_id, name, meal_type,
		meal_date, serving_size, calories, protein, carbs, fat
		FROM meal_logs WHERE profile_id = ? ORDER BY meal_date DESC, id DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("querying meal logs: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListForDay returns a profile's entries for one local date and meal type.
func (r *Repository) ListForDay(ctx context.Context, profileID, mealDate, mealType string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, profile_id, dish_id, name, meal_type,
		meal_date, serving_size, calories, protein, carbs, fat
		FROM meal_logs WHERE profile_id = ? AND meal_date = ? AND meal_type = ?
		ORDER BY id`, profileID, mealDate, mealType)
	if err != nil {
		return nil, fmt.Errorf("querying meal logs for day: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.DishID, &e.Name, &e.MealType,
			&e.MealDate, &e.ServingSize, &e.Nutrition.Calories, &e.Nutrition.Protein,
			&e.Nutrition.Carbs, &e.Nutrition.Fat); err != nil {
			return nil, fmt.Errorf("scanning meal log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
