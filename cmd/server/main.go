package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prosn/api/internal/config"
	"github.com/prosn/api/internal/database"
	"github.com/prosn/api/internal/handler"
	"github.com/prosn/api/internal/jobs"
	"github.com/prosn/api/internal/middleware"
	"github.com/prosn/api/internal/repository"
	"github.com/prosn/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewLikeDislikeRepository(db)
	solvingRepo := repository.NewSolvingRepository(db)
	studyRepo := repository.NewStudyRepository(db)

	// Initialize services
	tagService := service.NewTagService(tagRepo)

	postService := service.NewPostService(service.PostServiceConfig{
		PostRepo:     postRepo,
		UserRepo:     userRepo,
		TagRepo:      tagRepo,
		ReactionRepo: reactionRepo,
	})

	solvingService := service.NewSolvingService(service.SolvingServiceConfig{
		SolvingRepo: solvingRepo,
		UserRepo:    userRepo,
		PostRepo:    postRepo,
		TagRepo:     tagRepo,
	})

	studyService := service.NewStudyService(service.StudyServiceConfig{
		StudyRepo: studyRepo,
		UserRepo:  userRepo,
		TagRepo:   tagRepo,
	})

	// Initialize background jobs
	studySweeper := jobs.NewStudyExpirySweeper(studyService, cfg.Jobs.StudySweepInterval)
	studySweeper.Start()
	defer studySweeper.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	tagHandler := handler.NewTagHandler(tagService)
	postHandler := handler.NewPostHandler(postService)
	solvingHandler := handler.NewSolvingHandler(solvingService)
	studyHandler := handler.NewStudyHandler(studyService)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.Server.RateLimitPerMin,
		Window: time.Minute,
	})

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Tag catalog (public)
	mux.HandleFunc("GET /v1/tags", tagHandler.List)

	// Post read endpoints (public)
	mux.HandleFunc("GET /v1/posts", postHandler.List)
	mux.HandleFunc("GET /v1/posts/problems", postHandler.ListProblems)
	mux.HandleFunc("GET /v1/posts/informations", postHandler.ListInformation)
	mux.HandleFunc("GET /v1/posts/search", postHandler.Search)
	mux.HandleFunc("GET /v1/posts/{postId}", postHandler.GetByID)

	// Post write endpoints - requires authenticated user
	mux.Handle("POST /v1/posts/problems", middleware.Auth(http.HandlerFunc(postHandler.WriteProblem)))
	mux.Handle("POST /v1/posts/informations", middleware.Auth(http.HandlerFunc(postHandler.WriteInformation)))
	mux.Handle("DELETE /v1/posts/{postId}", middleware.Auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("POST /v1/posts/reaction", middleware.Auth(http.HandlerFunc(postHandler.LikeDislike)))

	// Solving endpoints
	mux.Handle("GET /v1/solvings", middleware.Auth(http.HandlerFunc(solvingHandler.List)))
	mux.Handle("POST /v1/solvings", middleware.Auth(http.HandlerFunc(solvingHandler.Submit)))
	mux.HandleFunc("GET /v1/problems/{problemId}/rate", solvingHandler.SuccessRate)

	// Study group endpoints
	mux.Handle("POST /v1/studies", middleware.Auth(http.HandlerFunc(studyHandler.Create)))
	mux.Handle("PATCH /v1/studies/{studyId}", middleware.Auth(http.HandlerFunc(studyHandler.Update)))
	mux.Handle("DELETE /v1/studies/{studyId}", middleware.Auth(http.HandlerFunc(studyHandler.Delete)))
	mux.Handle("POST /v1/studies/{studyId}/join", middleware.Auth(http.HandlerFunc(studyHandler.Join)))
	mux.Handle("POST /v1/studies/{studyId}/leave", middleware.Auth(http.HandlerFunc(studyHandler.Leave)))
	mux.Handle("GET /v1/studies/{studyId}", middleware.Auth(http.HandlerFunc(studyHandler.GetByID)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
