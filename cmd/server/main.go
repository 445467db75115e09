package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/heritage-map/backend/internal/database"
	"github.com/heritage-map/backend/internal/dataset"
	"github.com/heritage-map/backend/internal/favorites"
	"github.com/heritage-map/backend/internal/gamification"
	"github.com/heritage-map/backend/internal/mapdata"
	"github.com/heritage-map/backend/internal/quiz"
	"github.com/heritage-map/backend/internal/settings"
	"github.com/heritage-map/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[startup] no .env file, using environment")
	}

	// Initialize storage. A database failure degrades to in-memory
	// progress rather than refusing to start.
	var kv storage.KV
	db, driver, err := database.Open()
	if err != nil {
		log.Printf("[startup] database unavailable, progress will not persist: %v", err)
		kv = storage.NewMemory()
	} else {
		defer db.Close()
		if err := database.Migrate(db, driver); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		sqlKV, err := storage.NewSQL(db, driver)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		kv = sqlKV
		log.Printf("[startup] storage ready (%s)", driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dataset loads in the background; handlers report 503 until the
	// first load completes.
	provider := dataset.NewProvider(kv, getEnv("DATA_PATH", "./data/history-data.json"), os.Getenv("DATA_URL"))
	provider.Start(ctx)

	// Initialize services
	gamStore := gamification.NewStore(kv)
	gamService := gamification.NewService(gamStore, gamification.LogNotifier{})

	quizStore := quiz.NewStore(kv)
	quizService := quiz.NewService(quizStore, quiz.NewGenerator(nil), provider, gamService)

	favStore := favorites.NewStore(kv)

	gamService.SetFavoritesCounter(favStore)
	gamService.SetQuizDays(quizService)

	boundary := mapdata.NewService(kv, os.Getenv("BOUNDARY_URL"))
	settingsStore := settings.NewStore(kv)

	// Initialize handlers
	gamHandler := gamification.NewHandler(gamService, provider)
	quizHandler := quiz.NewHandler(quizService)
	datasetHandler := dataset.NewHandler(provider)
	mapHandler := mapdata.NewHandler(boundary)
	favHandler := favorites.NewHandler(favStore, gamService)
	settingsHandler := settings.NewHandler(settingsStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Progress and gamification
	api.HandleFunc("/progress", gamHandler.GetProgress).Methods("GET")
	api.HandleFunc("/progress/report", gamHandler.GetReport).Methods("GET")
	api.HandleFunc("/progress/stats", gamHandler.GetStats).Methods("GET")
	api.HandleFunc("/progress/login", gamHandler.Login).Methods("POST")
	api.HandleFunc("/progress/visit", gamHandler.VisitProvince).Methods("POST")
	api.HandleFunc("/progress/learn", gamHandler.LearnEvent).Methods("POST")
	api.HandleFunc("/progress/points", gamHandler.AddPoints).Methods("POST")
	api.HandleFunc("/achievements", gamHandler.GetAchievements).Methods("GET")
	api.HandleFunc("/leaderboard", gamHandler.GetLeaderboard).Methods("GET")

	// Daily quiz
	api.HandleFunc("/quiz/question", quizHandler.NewQuestion).Methods("POST")
	api.HandleFunc("/quiz/question", quizHandler.GetQuestion).Methods("GET")
	api.HandleFunc("/quiz/answer", quizHandler.SubmitAnswer).Methods("POST")
	api.HandleFunc("/quiz/stats", quizHandler.GetStats).Methods("GET")

	// Dataset and map
	api.HandleFunc("/dataset", datasetHandler.GetDataset).Methods("GET")
	api.HandleFunc("/map/boundary", mapHandler.GetBoundary).Methods("GET")
	api.HandleFunc("/map/provinces", mapHandler.GetProvinces).Methods("GET")

	// Favorites and settings
	api.HandleFunc("/favorites", favHandler.GetFavorites).Methods("GET")
	api.HandleFunc("/favorites/toggle", favHandler.ToggleFavorite).Methods("POST")
	api.HandleFunc("/settings/theme", settingsHandler.GetTheme).Methods("GET")
	api.HandleFunc("/settings/theme", settingsHandler.PutTheme).Methods("PUT")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Static SPA assets
	if webDir := os.Getenv("WEB_DIR"); webDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(webDir)))
	}

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + getEnv("PORT", "8080"),
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("[shutdown] signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[shutdown] %v", err)
		}
	}()

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("[shutdown] server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
