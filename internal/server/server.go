package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"nutriplan/internal/app"
	"nutriplan/internal/logger"
	"nutriplan/internal/meallog"
	"nutriplan/internal/mealplan"
	"nutriplan/internal/profile"
	"nutriplan/internal/stores"
)

// Server exposes the application over HTTP.
type Server struct {
	app *app.App
}

// New creates a Server.
func New(a *app.App) *Server {
	return &Server{app: a}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/plan", s.handleGetPlan)
		r.Post("/plan/regenerate", s.handleRegeneratePlan)
		r.Get("/dishes", s.handleListDishes)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Get("/meals", s.handleListMeals)
		r.Post("/meals/log", s.handleLogMeal)
		r.Get("/stores/recommendations", s.handleStoreRecommendations)
	})

	return r
}

func profileID(r *http.Request) string {
	if id := r.URL.Query().Get("profile_id"); id != "" {
		return id
	}
	return "demo"
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	stored, err := s.app.CurrentPlan(r.Context(), profileID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored.Plan)
}

func (s *Server) handleRegeneratePlan(w http.ResponseWriter, r *http.Request) {
	stored, err := s.app.RegeneratePlan(r.Context(), profileID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored.Plan)
}

func (s *Server) handleListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := s.app.Dishes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Profile(r.Context(), profileID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if p.ID == "" {
		http.Error(w, "profile id is required", http.StatusBadRequest)
		return
	}
	if err := s.app.SaveProfile(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	entries, err := s.app.Meals(r.Context(), profileID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLogMeal(w http.ResponseWriter, r *http.Request) {
	var e meallog.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if e.ProfileID == "" {
		e.ProfileID = profileID(r)
	}
	id, err := s.app.LogMeal(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleStoreRecommendations(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	ingredients := splitParam(r.URL.Query().Get("ingredients"))
	storeTypes := splitParam(r.URL.Query().Get("types"))
	if city == "" || len(ingredients) == 0 {
		http.Error(w, "city and ingredients are required", http.StatusBadRequest)
		return
	}

	recs, err := s.app.StoreRecommendations(r.Context(), ingredients, city, storeTypes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, mealplan.ErrNoPlan):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, stores.ErrDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		logger.L().Error("request failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
