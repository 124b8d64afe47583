package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nutriplan/internal/app"
	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/logger"
	"nutriplan/internal/meallog"
	"nutriplan/internal/mealplan"
	"nutriplan/internal/profile"
	"nutriplan/internal/server"
	"nutriplan/internal/stores"
)

func main() {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Env); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	application := app.NewApp(
		cfg,
		catalog.NewRepository(db.SQL),
		profile.NewRepository(db.SQL),
		mealplan.NewRepository(db.SQL),
		meallog.NewRepository(db.SQL),
		mealplan.NewGenerator(mealplan.DefaultConfig(), nil),
		stores.NewClient(cfg.StoreAPIURL, cfg.StoreAPIKey),
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "serve":
		srv := server.New(application)
		logger.L().Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := http.ListenAndServe(cfg.HTTPAddr, srv.Router()); err != nil {
			logger.L().Fatal("http server failed", zap.Error(err))
		}
	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		profileID := genCmd.String("profile", "demo", "Profile id to plan for")
		genCmd.Parse(os.Args[2:])

		stored, err := application.RegeneratePlan(ctx, *profileID)
		if err != nil {
			logger.L().Fatal("plan generation failed", zap.Error(err))
		}
		printPlan(stored)
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		profileID := planCmd.String("profile", "demo", "Profile id to show the plan for")
		planCmd.Parse(os.Args[2:])

		stored, err := application.CurrentPlan(ctx, *profileID)
		if err != nil {
			logger.L().Fatal("failed to load plan", zap.Error(err))
		}
		printPlan(stored)
	case "seed-demo":
		if err := application.SeedDemo(ctx); err != nil {
			logger.L().Fatal("seeding failed", zap.Error(err))
		}
		fmt.Println("Demo profile and catalog seeded.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printPlan(stored *mealplan.StoredPlan) {
	fmt.Printf("\n=== MEAL PLAN %s to %s ===\n", stored.StartDate, stored.EndDate)
	for _, day := range stored.Plan.Days {
		fmt.Printf("\n%s\n", day.Date)
		for _, meal := range day.Meals {
			fmt.Printf("  %-10s %-35s %6.0fg  %4.0f kcal / %3.0fg protein  [%s]\n",
				meal.Type, meal.Name, meal.ServingSize,
				meal.Nutrition.Calories, meal.Nutrition.Protein, meal.Status)
		}
	}
	fmt.Println()
}

func printUsage() {
	fmt.Println("Usage: nutriplan <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  serve       Start the HTTP API server")
	fmt.Println("  generate    Force-regenerate a profile's meal plan")
	fmt.Println("  plan        Show the current plan, regenerating if stale")
	fmt.Println("  seed-demo   Seed a demo profile and dish catalog")
}
