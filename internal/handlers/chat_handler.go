// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayazdoruck/pahiy-ai/internal/middleware"
	"github.com/ayazdoruck/pahiy-ai/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
	Model       string
	Production  bool
}

func NewChatHandler(cs *services.ChatService, model string, production bool) *ChatHandler {
	return &ChatHandler{
		ChatService: cs,
		Model:       model,
		Production:  production,
	}
}

// GetUserChats retrieves every chat owned by the user, newest activity first.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
}

// CreateChat starts a new empty conversation.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	// A missing body just means default title.
	_ = json.NewDecoder(r.Body).Decode(&req)

	chat, err := h.ChatService.CreateChat(r.Context(), userID, sanitizeInput(req.Title, 200))
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"chat": chat})
}

// GetChat returns one chat with its full message log.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	chatID := mux.Vars(r)["id"]
	chat, messages, err := h.ChatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chat":     chat,
		"messages": messages,
	})
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	chatID := mux.Vars(r)["id"]
	if err := h.ChatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat deleted"})
}

func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	chatID := mux.Vars(r)["id"]
	if err := h.ChatService.RenameChat(r.Context(), userID, chatID, sanitizeInput(req.Title, 200)); err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat renamed"})
}

// ClearChat wipes the message log but keeps the chat itself.
func (h *ChatHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	chatID := mux.Vars(r)["id"]
	if err := h.ChatService.ClearMessages(r.Context(), userID, chatID); err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat cleared"})
}

// SendMessage runs one question/answer exchange. With no chatId in the body
// a fresh chat is created first, so the very first message needs no
// separate create call.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req struct {
		ChatID  string `json:"chatId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	message := sanitizeInput(req.Message, 0)
	if message == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Message cannot be empty")
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		chat, err := h.ChatService.CreateChat(r.Context(), userID, "")
		if err != nil {
			respondServiceError(w, err, h.Production)
			return
		}
		chatID = chat.ID
	}

	reply, err := h.ChatService.SendMessage(r.Context(), userID, chatID, message)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response":  reply,
		"chatId":    chatID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports liveness and the configured model.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"model":     h.Model,
	})
}
