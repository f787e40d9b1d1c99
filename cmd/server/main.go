package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truongphat/internal/config"
	"truongphat/internal/database"
	"truongphat/internal/handlers"
	"truongphat/internal/kvstore"
	"truongphat/internal/ratelimit"
	"truongphat/internal/repository"
	"truongphat/internal/security"
	"truongphat/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.Database.Type)

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Submission ledger: Redis when configured, in-memory otherwise.
	var ledger kvstore.Store
	if cfg.Redis.URL != "" {
		redisStore, err := kvstore.NewRedisStore(context.Background(), cfg.Redis.URL, cfg.RateLimit.ResetPeriod)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		ledger = redisStore
		log.Println("Submission ledger backed by Redis")
	} else {
		ledger = kvstore.NewMemoryStore()
		log.Println("Submission ledger in memory (single instance only)")
	}

	// Repositories.
	staffRepo := repository.NewStaffRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	blogTypeRepo := repository.NewBlogTypeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contactRepo := repository.NewContactRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services.
	emailService, err := service.NewEmailService(cfg.Email.AWSRegion, cfg.Email.FromEmail,
		cfg.Email.FromName, cfg.Email.ContactInbox, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	gate := ratelimit.NewGate(ledger, cfg.RateLimit.MaxSubmissions, cfg.RateLimit.ResetPeriod)

	authService := service.NewAuthService(staffRepo, tokenRepo, cfg.Auth)
	staffService := service.NewStaffService(staffRepo, tokenRepo)
	blogService := service.NewBlogService(blogRepo, blogTypeRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	projectService := service.NewProjectService(projectRepo, categoryRepo)
	contactService := service.NewContactService(contactRepo, gate, emailService)
	statsService := service.NewStatsService(statsRepo, contactRepo)

	// 10 credential attempts per IP per minute.
	loginLimiter := security.NewRateLimiter(10, time.Minute)

	middleware := handlers.NewMiddleware(authService, loginLimiter)
	router := handlers.NewRouter(handlers.Handlers{
		Middleware: middleware,
		Auth: handlers.NewAuthHandler(authService, staffService, emailService,
			cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.Server.BaseURL),
		Blog:     handlers.NewBlogHandler(blogService),
		Category: handlers.NewCategoryHandler(categoryService),
		Project:  handlers.NewProjectHandler(projectService),
		Contact:  handlers.NewContactHandler(contactService),
		Staff:    handlers.NewStaffHandler(staffService),
		Stats:    handlers.NewStatsHandler(statsService),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go cleanupExpiredTokens(authService)

	go func() {
		log.Printf("Server starting on %s (env: %s)", server.Addr, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// cleanupExpiredTokens periodically removes expired refresh and password
// reset tokens.
func cleanupExpiredTokens(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredTokens(); err != nil {
			log.Printf("Error cleaning up expired tokens: %v", err)
		} else {
			log.Println("Expired tokens cleaned up")
		}
	}
}
