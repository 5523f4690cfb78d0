// File: cmd/lite/main.go
//
// Lite mode: the same chat engine without accounts or storage. History
// lives in process memory per anonymous session id and disappears on
// restart.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ayazdoruck/pahiy-ai/internal/config"
	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	"github.com/ayazdoruck/pahiy-ai/internal/middleware"
	"github.com/ayazdoruck/pahiy-ai/internal/ratelimit"
	"github.com/ayazdoruck/pahiy-ai/internal/services"
	"github.com/ayazdoruck/pahiy-ai/internal/services/ai"
	chatservice "github.com/ayazdoruck/pahiy-ai/internal/services/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/services/conversation"
)

type liteServer struct {
	store  *conversation.Store
	ai     *services.AIService
	config *chatservice.Config
	model  string
}

func main() {
	cfg := config.Load()

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

	srv := &liteServer{
		store:  conversation.NewStore(),
		ai:     aiService,
		config: chatservice.DefaultConfig(),
		model:  cfg.GenAIModel,
	}

	limiter := ratelimit.NewMemoryRateLimiter(30 * time.Minute)
	defer limiter.Close()

	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(nil))
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.Handle("/api/chat",
		middleware.RateLimitMiddleware(limiter, "chat", ratelimit.ChatLimit)(
			http.HandlerFunc(srv.handleChat))).Methods("POST")
	r.HandleFunc("/api/history", srv.handleHistory).Methods("GET")
	r.HandleFunc("/api/clear", srv.handleClear).Methods("POST")
	r.HandleFunc("/api/health", srv.handleHealth).Methods("GET")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.Printf("Pahiy AI (lite) starting on port :%s, model %s", cfg.ServerPort, cfg.GenAIModel)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}

func (s *liteServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body", "code": "BAD_REQUEST"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message cannot be empty", "code": "VALIDATION_ERROR"})
		return
	}
	if runes := []rune(message); len(runes) > s.config.MaxMessageLength {
		message = string(runes[:s.config.MaxMessageLength])
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := toHistory(s.store.Get(sessionID))
	s.store.Append(sessionID, domain.RoleUser, message)

	prompt := chatservice.AssemblePrompt(message, history, "", s.config.PromptHistorySize)

	reply, err := s.ai.GetCompletion(r.Context(), prompt)
	if err != nil {
		log.Printf("[Lite] Completion failed for session %s: %v", sessionID, err)
		reply = "Error: the assistant could not generate a reply. Please try again in a moment."
	} else {
		reply = chatservice.FormatResponse(reply)
	}

	s.store.Append(sessionID, domain.RoleAssistant, reply)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response":   reply,
		"session_id": sessionID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *liteServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required", "code": "VALIDATION_ERROR"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"messages":   s.store.Get(sessionID),
	})
}

func (s *liteServer) handleClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required", "code": "VALIDATION_ERROR"})
		return
	}
	s.store.Clear(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}

func (s *liteServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"model":           s.model,
		"active_sessions": s.store.Sessions(),
	})
}

func toHistory(entries []conversation.Entry) []chatservice.HistoryEntry {
	history := make([]chatservice.HistoryEntry, len(entries))
	for i, e := range entries {
		history[i] = chatservice.HistoryEntry{Role: e.Role, Content: e.Content}
	}
	return history
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
