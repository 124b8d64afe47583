package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"nutriplan/internal/logger"
)

// Repository is a database-backed store for dishes and their ingredients.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full dish catalog with ingredient sub-lists and decoded
// embeddings.
func (r *Repository) List(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, meal_type, goal,
		eating_style, health_condition, embedding FROM dishes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying dishes: %w", err)
	}
	defer rows.Close()

	var dishes []Dish
	index := make(map[string]int)
	for rows.Next() {
		var (
			d    Dish
			blob []byte
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.MealType, &d.Goal,
			&d.EatingStyle, &d.HealthCondition, &blob); err != nil {
			return nil, fmt.Errorf("scanning dish: %w", err)
		}
		embedding, err := DecodeEmbedding(blob)
		if err != nil {
			// A corrupt embedding only disables similarity fallback for
			// this dish; it must not take the whole catalog down.
			logger.L().Sugar().Warnf("skipping corrupt embedding for dish %s: %v", d.ID, err)
		} else {
			d.Embedding = embedding
		}
		index[d.ID] = len(dishes)
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dishes: %w", err)
	}

	if err := r.attachIngredients(ctx, dishes, index); err != nil {
		return nil, err
	}
	return dishes, nil
}

// Get returns a single dish with its ingredients.
func (r *Repository) Get(ctx context.Context, id string) (*Dish, error) {
	var (
		d    Dish
		blob []byte
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description, meal_type, goal,
		eating_style, health_condition, embedding FROM dishes WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.MealType, &d.Goal,
			&d.EatingStyle, &d.HealthCondition, &blob)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dish %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying dish: %w", err)
	}
	if d.Embedding, err = DecodeEmbedding(blob); err != nil {
		return nil, fmt.Errorf("decoding embedding for dish %s: %w", id, err)
	}

	dishes := []Dish{d}
	if err := r.attachIngredients(ctx, dishes, map[string]int{d.ID: 0}); err != nil {
		return nil, err
	}
	return &dishes[0], nil
}

// Save upserts a dish and replaces its ingredient list atomically.
func (r *Repository) Save(ctx context.Context, d Dish) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO dishes
		(id, name, description, meal_type, goal, eating_style, health_condition, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Description, d.MealType, d.Goal, d.EatingStyle,
		d.HealthCondition, EncodeEmbedding(d.Embedding))
	if err != nil {
		return fmt.Errorf("upserting dish %s: %w", d.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ingredients WHERE dish_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clearing ingredients for dish %s: %w", d.ID, err)
	}
	for _, ing := range d.Ingredients {
		_, err := tx.ExecContext(ctx, `INSERT INTO ingredients
			(id, dish_id, name, amount, calories, protein, carbs, fat, allergen, is_rice)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ing.ID, d.ID, ing.Name, ing.Amount,
			ing.Nutrition.Calories, ing.Nutrition.Protein, ing.Nutrition.Carbs, ing.Nutrition.Fat,
			ing.Allergen, ing.IsRice)
		if err != nil {
			return fmt.Errorf("inserting ingredient %s: %w", ing.Name, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) attachIngredients(ctx context.Context, dishes []Dish, index map[string]int) error {
	if len(dishes) == 0 {
		return nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, dish_id, name, amount, calories,
		protein, carbs, fat, allergen, is_rice FROM ingredients ORDER BY dish_id, id`)
	if err != nil {
		return fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ing    Ingredient
			dishID string
		)
		if err := rows.Scan(&ing.ID, &dishID, &ing.Name, &ing.Amount,
			&ing.Nutrition.Calories, &ing.Nutrition.Protein, &ing.Nutrition.Carbs,
			&ing.Nutrition.Fat, &ing.Allergen, &ing.IsRice); err != nil {
			return fmt.Errorf("scanning ingredient: %w", err)
		}
		if i, ok := index[dishID]; ok {
			dishes[i].Ingredients = append(dishes[i].Ingredients, ing)
		}
	}
	return rows.Err()
}
