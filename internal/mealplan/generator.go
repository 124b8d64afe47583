package mealplan

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"nutriplan/internal/catalog"
	"nutriplan/internal/profile"
)

// Generator builds multi-day meal plans. It performs no I/O; the caller
// supplies the profile and the full dish catalog and persists the result.
// All randomness flows through the injected rng so tests can fix a seed.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a Generator. A nil rng gets a time-seeded source.
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Generate assembles a plan starting at now's local calendar date. Each day
// gets Breakfast, Lunch and Dinner plus one Snack slot per meal beyond
// three, followed by a daily repair pass; a final weekly pass nudges the
// protein total across the whole horizon.
func (g *Generator) Generate(p profile.Profile, dishes []catalog.Dish, now time.Time) *Plan {
	timeframe := p.Timeframe
	if timeframe < 1 {
		timeframe = 7
	}
	mealsPerDay := p.MealsPerDay
	if mealsPerDay < 3 {
		mealsPerDay = 3
	}
	snacks := mealsPerDay - 3

	kind := classifyGoal(p.Goal)
	targets := perMealTargets(p, g.cfg)

	pools := map[MealType]Pool{
		MealBreakfast: buildPool(p, dishes, MealBreakfast, targets[MealBreakfast], g.cfg, g.rng),
		MealLunch:     buildPool(p, dishes, MealLunch, targets[MealLunch], g.cfg, g.rng),
		MealDinner:    buildPool(p, dishes, MealDinner, targets[MealDinner], g.cfg, g.rng),
	}
	if snacks > 0 {
		pools[MealSnack] = buildPool(p, dishes, MealSnack, targets[MealSnack], g.cfg, g.rng)
	}

	hist := newUsageHistory()
	plan := &Plan{
		StartDate: LocalDate(now),
		EndDate:   LocalDate(addDays(now, timeframe-1)),
	}

	for dayIdx := 0; dayIdx < timeframe; dayIdx++ {
		day := PlanDay{Date: LocalDate(addDays(now, dayIdx))}
		usedToday := make(map[string]bool)

		for _, mt := range []MealType{MealBreakfast, MealLunch, MealDinner} {
			meal := g.fillSlot(pools[mt], mt, dayIdx, usedToday, hist, targets[mt], kind)
			day.Meals = append(day.Meals, meal)
			if !meal.IsSentinel() {
				usedToday[meal.ID] = true
			}
		}
		for s := 0; s < snacks; s++ {
			// Snacks reference dayIdx+offset so their recency window is
			// shifted slightly relative to the main meals.
			meal := g.fillSlot(pools[MealSnack], MealSnack, dayIdx+s+1, usedToday, hist, targets[MealSnack], kind)
			day.Meals = append(day.Meals, meal)
			if !meal.IsSentinel() {
				usedToday[meal.ID] = true
			}
		}

		plan.Days = append(plan.Days, day)
		g.repairDay(plan, dayIdx, p, pools, targets, kind, hist)
	}

	g.weeklyProteinPass(plan, p, pools, targets, kind, hist, timeframe)
	return plan
}

func (g *Generator) fillSlot(pool Pool, mt MealType, dayRef int, usedToday map[string]bool,
	hist *usageHistory, target catalog.Nutrition, kind goalKind) PlannedMeal {

	c, ok := g.selectCandidate(pool, dayRef, usedToday, hist)
	if !ok {
		return sentinelMeal(mt)
	}
	serving := g.suggestedServing(c.Dish, target, kind)
	return PlannedMeal{
		Type:        mt,
		Dish:        c.Dish,
		Status:      StatusPending,
		ServingSize: serving,
		Nutrition:   catalog.ScaledNutrition(c.Dish, serving, g.cfg.BaseUnit),
	}
}

func dayNutrition(day PlanDay) catalog.Nutrition {
	var total catalog.Nutrition
	for _, m := range day.Meals {
		total = total.Add(m.Nutrition)
	}
	return total
}

func planProtein(plan *Plan) float64 {
	var total float64
	for _, day := range plan.Days {
		total += dayNutrition(day).Protein
	}
	return total
}

type swapGoal int

const (
	swapReduceCalories swapGoal = iota
	swapRaiseCalories
	swapRaiseProtein
)

// repairDay applies targeted single-meal swaps to pull the day back inside
// the calorie tolerance band, then corrects a protein shortfall with at most
// one more swap in Dinner>Lunch>Breakfast>Snack priority order.
func (g *Generator) repairDay(plan *Plan, dayIdx int, p profile.Profile,
	pools map[MealType]Pool, targets map[MealType]catalog.Nutrition,
	kind goalKind, hist *usageHistory) {

	day := &plan.Days[dayIdx]
	total := dayNutrition(*day)

	if p.CalorieNeeds > 0 {
		upper := p.CalorieNeeds * (1 + g.cfg.CalorieTolerance)
		lower := p.CalorieNeeds * (1 - g.cfg.CalorieTolerance)
		if total.Calories > upper {
			if idx := extremeCalorieMeal(*day, true); idx >= 0 {
				g.trySwap(plan, dayIdx, idx, pools, targets, kind, hist, swapReduceCalories)
			}
		} else if total.Calories < lower {
			if idx := extremeCalorieMeal(*day, false); idx >= 0 {
				g.trySwap(plan, dayIdx, idx, pools, targets, kind, hist, swapRaiseCalories)
			}
		}
	}

	total = dayNutrition(*day)
	proteinFloor := math.Max(g.cfg.ProteinDayFloor, p.ProteinNeeded*(1-g.cfg.CalorieTolerance))
	if total.Protein < proteinFloor {
		for _, mt := range []MealType{MealDinner, MealLunch, MealBreakfast, MealSnack} {
			idx := mealIndexOfType(*day, mt)
			if idx < 0 {
				continue
			}
			if g.trySwap(plan, dayIdx, idx, pools, targets, kind, hist, swapRaiseProtein) {
				break
			}
		}
	}
}

// extremeCalorieMeal returns the index of the highest (or lowest) calorie
// non-sentinel meal of the day, or -1.
func extremeCalorieMeal(day PlanDay, highest bool) int {
	idx := -1
	for i, m := range day.Meals {
		if m.IsSentinel() {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		if highest && m.Nutrition.Calories > day.Meals[idx].Nutrition.Calories {
			idx = i
		}
		if !highest && m.Nutrition.Calories < day.Meals[idx].Nutrition.Calories {
			idx = i
		}
	}
	return idx
}

func mealIndexOfType(day PlanDay, mt MealType) int {
	for i, m := range day.Meals {
		if m.Type == mt && !m.IsSentinel() {
			return i
		}
	}
	return -1
}

// trySwap attempts to replace one meal with a pool candidate that improves
// the requested metric while still honoring the repetition constraints
// against the current usage history. When the primary ordering yields no
// acceptable candidate, it falls back to an embedding-cosine-similarity
// ordering over the same pool (when dish vectors are available), still
// requiring a strict improvement. Returns true when a swap was applied.
func (g *Generator) trySwap(plan *Plan, dayIdx, mealIdx int, pools map[MealType]Pool,
	targets map[MealType]catalog.Nutrition, kind goalKind, hist *usageHistory, goal swapGoal) bool {

	day := &plan.Days[dayIdx]
	current := day.Meals[mealIdx]
	pool, ok := pools[current.Type]
	if !ok {
		return false
	}
	target := targets[current.Type]

	primary := g.orderedSwapCandidates(pool, goal)
	if g.applyFirstAcceptable(plan, dayIdx, mealIdx, primary, target, kind, hist, goal) {
		return true
	}

	if len(current.Embedding) > 0 {
		similar := orderBySimilarity(pool.Candidates, current.Embedding)
		return g.applyFirstAcceptable(plan, dayIdx, mealIdx, similar, target, kind, hist, goal)
	}
	return false
}

func (g *Generator) orderedSwapCandidates(pool Pool, goal swapGoal) []Candidate {
	switch goal {
	case swapRaiseProtein:
		return pool.HighProtein
	case swapReduceCalories:
		ordered := append([]Candidate(nil), pool.Candidates...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Nutrition.Calories < ordered[j].Nutrition.Calories
		})
		return ordered
	default:
		ordered := append([]Candidate(nil), pool.Candidates...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Nutrition.Calories > ordered[j].Nutrition.Calories
		})
		return ordered
	}
}

func orderBySimilarity(candidates []Candidate, embedding []float32) []Candidate {
	type scored struct {
		c   Candidate
		sim float64
	}
	var withVectors []scored
	for _, c := range candidates {
		if len(c.Dish.Embedding) == 0 {
			continue
		}
		withVectors = append(withVectors, scored{c, catalog.CosineSimilarity(embedding, c.Dish.Embedding)})
	}
	sort.SliceStable(withVectors, func(i, j int) bool {
		return withVectors[i].sim > withVectors[j].sim
	})
	out := make([]Candidate, len(withVectors))
	for i, s := range withVectors {
		out[i] = s.c
	}
	return out
}

func (g *Generator) applyFirstAcceptable(plan *Plan, dayIdx, mealIdx int, candidates []Candidate,
	target catalog.Nutrition, kind goalKind, hist *usageHistory, goal swapGoal) bool {

	day := &plan.Days[dayIdx]
	current := day.Meals[mealIdx]
	total := dayNutrition(*day)

	for _, c := range candidates {
		if c.Dish.ID == current.ID || usedInDay(*day, c.Dish.ID) {
			continue
		}
		if hist.count(c.Dish.ID) >= g.cfg.MaxRepeatsPerWeek {
			continue
		}
		if !hist.gapSatisfied(c.Dish.ID, dayIdx, g.cfg.MinDaysBetweenSameDish) {
			continue
		}

		serving := g.suggestedServing(c.Dish, target, kind)
		nutrition := catalog.ScaledNutrition(c.Dish, serving, g.cfg.BaseUnit)
		newTotal := catalog.Nutrition{
			Calories: total.Calories - current.Nutrition.Calories + nutrition.Calories,
			Protein:  total.Protein - current.Nutrition.Protein + nutrition.Protein,
			Carbs:    total.Carbs - current.Nutrition.Carbs + nutrition.Carbs,
			Fat:      total.Fat - current.Nutrition.Fat + nutrition.Fat,
		}
		if !swapAccepted(goal, total, newTotal) {
			continue
		}

		// Only give the replaced dish its use back when no other slot in
		// the plan still holds it; releasing a dish that is still on the
		// menu elsewhere would under-count its reuse.
		if !current.IsSentinel() && !usedElsewhere(plan, current.ID, dayIdx, mealIdx) {
			hist.release(current.ID)
		}
		hist.use(c.Dish.ID, dayIdx)

		day.Meals[mealIdx] = PlannedMeal{
			Type:        current.Type,
			Dish:        c.Dish,
			Status:      StatusPending,
			ServingSize: serving,
			Nutrition:   nutrition,
		}
		return true
	}
	return false
}

func swapAccepted(goal swapGoal, before, after catalog.Nutrition) bool {
	switch goal {
	case swapReduceCalories:
		return after.Calories < before.Calories
	case swapRaiseCalories:
		return after.Calories > before.Calories
	default:
		return after.Protein > before.Protein
	}
}

func usedInDay(day PlanDay, dishID string) bool {
	for _, m := range day.Meals {
		if !m.IsSentinel() && m.ID == dishID {
			return true
		}
	}
	return false
}

func usedElsewhere(plan *Plan, dishID string, skipDay, skipMeal int) bool {
	for di, day := range plan.Days {
		for mi, m := range day.Meals {
			if di == skipDay && mi == skipMeal {
				continue
			}
			if !m.IsSentinel() && m.ID == dishID {
				return true
			}
		}
	}
	return false
}

// weeklyProteinPass compares the horizon's protein total against the daily
// need times the number of days. When the shortfall exceeds the slack it
// walks the days in order, replacing at most one meal per day from the
// high-protein sub-pools until the target is met or candidates run out.
func (g *Generator) weeklyProteinPass(plan *Plan, p profile.Profile, pools map[MealType]Pool,
	targets map[MealType]catalog.Nutrition, kind goalKind, hist *usageHistory, timeframe int) {

	weeklyTarget := p.ProteinNeeded * float64(timeframe)
	if weeklyTarget <= 0 {
		return
	}
	total := planProtein(plan)
	slack := math.Max(g.cfg.WeeklyProteinSlackGrams, g.cfg.WeeklyProteinSlackFraction*weeklyTarget)
	if weeklyTarget-total <= slack {
		return
	}

	for dayIdx := range plan.Days {
		for _, mt := range []MealType{MealDinner, MealLunch, MealBreakfast, MealSnack} {
			idx := mealIndexOfType(plan.Days[dayIdx], mt)
			if idx < 0 {
				continue
			}
			if g.trySwap(plan, dayIdx, idx, pools, targets, kind, hist, swapRaiseProtein) {
				total = planProtein(plan)
				break
			}
		}
		if total >= weeklyTarget {
			return
		}
	}
}
