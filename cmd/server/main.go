// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ayazdoruck/pahiy-ai/internal/config"
	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	"github.com/ayazdoruck/pahiy-ai/internal/handlers"
	"github.com/ayazdoruck/pahiy-ai/internal/middleware"
	"github.com/ayazdoruck/pahiy-ai/internal/ratelimit"
	chatrepo "github.com/ayazdoruck/pahiy-ai/internal/repository/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/message"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/session"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
	"github.com/ayazdoruck/pahiy-ai/internal/services"
	"github.com/ayazdoruck/pahiy-ai/internal/services/ai"
	"github.com/ayazdoruck/pahiy-ai/internal/services/mail"
	"github.com/ayazdoruck/pahiy-ai/internal/services/user_services"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}, &domain.Session{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)
	sessionRepo := session.NewSessionRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.GenAIAPIKey
	aiConfig.BaseURL = cfg.GenAIBaseURL
	aiConfig.Model = cfg.GenAIModel
	aiConfig.Timeout = time.Duration(cfg.AITimeoutSeconds) * time.Second

	aiService, err := services.NewAIService(
		ai.NewOpenAIProvider(aiConfig),
		aiConfig,
		services.NewLogger("ai"),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI Service: %v", err)
	}

	var mailSender mail.Sender
	if cfg.ResendAPIKey != "" {
		mailConfig := mail.DefaultConfig()
		mailConfig.APIKey = cfg.ResendAPIKey
		mailConfig.From = cfg.MailFrom
		mailSender = mail.NewResendProvider(mailConfig)
	} else {
		log.Printf("RESEND_API_KEY not set, verification links are printed to the console")
		mailSender = mail.NewConsoleProvider()
	}

	userService := user_services.NewUserService(
		userRepo, sessionRepo, mailSender, cfg.FrontendURL, services.NewLogger("user"))

	chatService, err := services.NewChatService(
		chatRepo, messageRepo, userRepo, aiService, services.NewLogger("chat"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	limiter := ratelimit.NewMemoryRateLimiter(30 * time.Minute)
	defer limiter.Close()

	// Expired session rows are swept in the background; validity itself is
	// checked at query time, the sweep only keeps the table small.
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go userService.SweepLoop(sweepCtx, time.Hour)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg.FrontendURL, cfg.IsProduction())
	chatHandler := handlers.NewChatHandler(chatService, cfg.GenAIModel, cfg.IsProduction())

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(userService.SessionService)

	var corsOrigins []string
	if cfg.CORSOrigins != "" {
		for _, origin := range strings.Split(cfg.CORSOrigins, ",") {
			corsOrigins = append(corsOrigins, strings.TrimSpace(origin))
		}
	}

	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/api/health", chatHandler.Health).Methods("GET")
	r.HandleFunc("/api/verify-email/{token}", authHandler.VerifyEmail).Methods("GET")

	// Register, login and resend are rate limited before any authentication
	// so unauthenticated abuse hits the limiter first.
	r.Handle("/api/register",
		middleware.RateLimitMiddleware(limiter, "register", ratelimit.RegisterLimit)(
			http.HandlerFunc(authHandler.Register))).Methods("POST")
	r.Handle("/api/login",
		middleware.RateLimitMiddleware(limiter, "login", ratelimit.LoginLimit)(
			http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.Handle("/api/resend-verification",
		middleware.RateLimitMiddleware(limiter, "resend", ratelimit.ResendLimit)(
			http.HandlerFunc(authHandler.ResendVerification))).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/change-password", authHandler.ChangePassword).Methods("POST")
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/{id}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chats/{id}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chats/{id}/title", chatHandler.RenameChat).Methods("PUT")
	api.HandleFunc("/chats/{id}/clear", chatHandler.ClearChat).Methods("POST")

	// The send route authenticates first, then rate limits per user IP.
	api.Handle("/chat",
		middleware.RateLimitMiddleware(limiter, "chat", ratelimit.ChatLimit)(
			http.HandlerFunc(chatHandler.SendMessage))).Methods("POST")

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("==================================================")
	log.Printf("Pahiy AI - Chat Backend")
	log.Printf("==================================================")
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Model: %s", cfg.GenAIModel)
	log.Printf("Server starting on port %s", port)
	log.Printf("==================================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
