package mealplan

import "time"

// LogRef is the slice of a logged meal the reconciler needs: which dish was
// logged, for which slot, on which local date.
type LogRef struct {
	DishID   string
	MealType MealType
	MealDate string
}

// Reconcile derives each planned meal's status from the meal log: "added"
// when a log entry matches the dish id, meal type and exact scheduled date;
// otherwise "missed" when the scheduled date is strictly before today's
// local date, else "pending". It never touches dish selections, and running
// it twice against the same log yields identical results.
func Reconcile(plan *Plan, logs []LogRef, now time.Time) {
	if plan == nil {
		return
	}
	today := LocalDate(now)

	type key struct {
		dishID string
		mt     MealType
		date   string
	}
	logged := make(map[key]bool, len(logs))
	for _, l := range logs {
		logged[key{l.DishID, l.MealType, l.MealDate}] = true
	}

	for di := range plan.Days {
		day := &plan.Days[di]
		for mi := range day.Meals {
			meal := &day.Meals[mi]
			switch {
			case logged[key{meal.ID, meal.Type, day.Date}]:
				meal.Status = StatusAdded
			case day.Date < today:
				meal.Status = StatusMissed
			default:
				meal.Status = StatusPending
			}
		}
	}
}
