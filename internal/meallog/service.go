package meallog

import (
	"context"
	"fmt"
)

// Service applies the logging rules on top of the repository: a meal logged
// twice for the same local date, meal type and normalized name merges its
// quantities into the existing entry instead of creating a duplicate.
type Service struct {
	repo *Repository
}

// NewService creates a new Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Log records a meal, merging into an existing same-day/type/name entry
// when one exists. It returns the id of the inserted or updated entry.
func (s *Service) Log(ctx context.Context, e Entry) (int64, error) {
	if e.ProfileID == "" || e.Name == "" || e.MealType == "" || e.MealDate == "" {
		return 0, fmt.Errorf("meal log requires profile, name, meal type and date")
	}

	existing, err := s.repo.ListForDay(ctx, e.ProfileID, e.MealDate, e.MealType)
	if err != nil {
		return 0, err
	}

	normalized := NormalizeName(e.Name)
	for _, prev := range existing {
		if NormalizeName(prev.Name) != normalized {
			continue
		}
		prev.ServingSize += e.ServingSize
		prev.Nutrition = prev.Nutrition.Add(e.Nutrition)
		if err := s.repo.Update(ctx, prev); err != nil {
			return 0, err
		}
		return prev.ID, nil
	}

	return s.repo.Insert(ctx, e)
}
