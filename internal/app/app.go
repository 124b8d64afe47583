package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	"nutriplan/internal/logger"
	"nutriplan/internal/meallog"
	"nutriplan/internal/mealplan"
	"nutriplan/internal/profile"
	"nutriplan/internal/stores"
)

// App holds the application's dependencies and implements the operations
// the CLI and HTTP server expose.
type App struct {
	cfg         *config.Config
	catalogRepo *catalog.Repository
	profileRepo *profile.Repository
	planRepo    *mealplan.Repository
	logRepo     *meallog.Repository
	logService  *meallog.Service
	generator   *mealplan.Generator
	storeClient stores.Client

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	catalogRepo *catalog.Repository,
	profileRepo *profile.Repository,
	planRepo *mealplan.Repository,
	logRepo *meallog.Repository,
	generator *mealplan.Generator,
	storeClient stores.Client,
) *App {
	return &App{
		cfg:         cfg,
		catalogRepo: catalogRepo,
		profileRepo: profileRepo,
		planRepo:    planRepo,
		logRepo:     logRepo,
		logService:  meallog.NewService(logRepo),
		generator:   generator,
		storeClient: storeClient,
		now:         time.Now,
	}
}

// CurrentPlan returns the profile's active plan, reconciled against the
// meal log. A missing, expired, or timeframe-mismatched plan is regenerated
// wholesale first; reconciliation alone never changes dish selections.
func (a *App) CurrentPlan(ctx context.Context, profileID string) (*mealplan.StoredPlan, error) {
	p, err := a.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	timeframe := p.Timeframe
	if timeframe < 1 {
		timeframe = a.cfg.DefaultTimeframe
	}

	stored, err := a.planRepo.Latest(ctx, profileID)
	switch {
	case errors.Is(err, mealplan.ErrNoPlan):
		stored = nil
	case err != nil:
		return nil, err
	}

	if stored == nil || stored.Stale(timeframe, a.now()) {
		stored, err = a.regenerate(ctx, p, timeframe)
		if err != nil {
			return nil, err
		}
	}

	if err := a.reconcile(ctx, profileID, stored.Plan); err != nil {
		return nil, err
	}
	return stored, nil
}

// RegeneratePlan discards the stored plan state and builds a fresh one.
// Blocking regeneration while a plan has logged meals is a caller policy;
// this operation itself always regenerates.
func (a *App) RegeneratePlan(ctx context.Context, profileID string) (*mealplan.StoredPlan, error) {
	p, err := a.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	timeframe := p.Timeframe
	if timeframe < 1 {
		timeframe = a.cfg.DefaultTimeframe
	}

	stored, err := a.regenerate(ctx, p, timeframe)
	if err != nil {
		return nil, err
	}
	if err := a.reconcile(ctx, profileID, stored.Plan); err != nil {
		return nil, err
	}
	return stored, nil
}

func (a *App) regenerate(ctx context.Context, p *profile.Profile, timeframe int) (*mealplan.StoredPlan, error) {
	dishes, err := a.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dish catalog: %w", err)
	}

	effective := *p
	effective.Timeframe = timeframe
	now := a.now()
	plan := a.generator.Generate(effective, dishes, now)

	id, err := a.planRepo.Save(ctx, p.ID, plan, timeframe)
	if err != nil {
		return nil, err
	}
	logger.L().Info("generated meal plan",
		zap.String("profile", p.ID),
		zap.String("plan", id),
		zap.Int("days", len(plan.Days)))

	return &mealplan.StoredPlan{
		ID:        id,
		ProfileID: p.ID,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
		Timeframe: timeframe,
		Plan:      plan,
		CreatedAt: now,
	}, nil
}

func (a *App) reconcile(ctx context.Context, profileID string, plan *mealplan.Plan) error {
	entries, err := a.logRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return fmt.Errorf("loading meal log: %w", err)
	}
	refs := make([]mealplan.LogRef, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, mealplan.LogRef{
			DishID:   e.DishID,
			MealType: mealplan.MealType(e.MealType),
			MealDate: e.MealDate,
		})
	}
	mealplan.Reconcile(plan, refs, a.now())
	return nil
}

// LogMeal records a logged meal, merging duplicates per the service rules.
func (a *App) LogMeal(ctx context.Context, e meallog.Entry) (int64, error) {
	if e.MealDate == "" {
		e.MealDate = mealplan.LocalDate(a.now())
	}
	return a.logService.Log(ctx, e)
}

// Meals returns a profile's logged meals.
func (a *App) Meals(ctx context.Context, profileID string) ([]meallog.Entry, error) {
	return a.logRepo.ListByProfile(ctx, profileID)
}

// Dishes returns the full dish catalog.
func (a *App) Dishes(ctx context.Context) ([]catalog.Dish, error) {
	return a.catalogRepo.List(ctx)
}

// SaveProfile upserts a profile.
func (a *App) SaveProfile(ctx context.Context, p *profile.Profile) error {
	return a.profileRepo.Upsert(ctx, p)
}

// Profile returns a profile by id.
func (a *App) Profile(ctx context.Context, id string) (*profile.Profile, error) {
	return a.profileRepo.Get(ctx, id)
}

// StoreRecommendations proxies the external vendor lookup service.
func (a *App) StoreRecommendations(ctx context.Context, ingredients []string, city string, storeTypes []string) ([]stores.Recommendation, error) {
	return a.storeClient.Recommend(ctx, ingredients, city, storeTypes)
}
