// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	chatrepo "github.com/ayazdoruck/pahiy-ai/internal/repository/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/message"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
	chatservice "github.com/ayazdoruck/pahiy-ai/internal/services/chat"
)

// upstreamFailureReply is stored and shown as the assistant's reply when
// the completion service fails; the chat request itself still succeeds.
const upstreamFailureReply = "Error: the assistant could not generate a reply. Please try again in a moment."

// DefaultChatTitle names chats until the first exchange derives a real one.
const DefaultChatTitle = "New Chat"

// CompletionService is the slice of AIService the chat flow depends on.
type CompletionService interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	config      *chatservice.Config
	chatRepo    chatrepo.ChatRepository
	messageRepo message.MessageRepository
	userRepo    user.UserRepository
	completion  CompletionService
	logger      Logger
}

func NewChatService(
	chatRepo chatrepo.ChatRepository,
	messageRepo message.MessageRepository,
	userRepo user.UserRepository,
	completion CompletionService,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if userRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "user repository is required")
	}
	if completion == nil {
		return nil, chatservice.NewValidationError("constructor", "completion service is required")
	}

	config := chatservice.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		config:      config,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		completion:  completion,
		logger:      logger,
	}, nil
}

// CreateChat starts an empty conversation thread for the user.
func (s *ChatService) CreateChat(ctx context.Context, userID uint, title string) (*domain.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultChatTitle
	}

	newChat := &domain.Chat{UserID: userID, Title: title}
	createdChat, err := s.chatRepo.Create(ctx, newChat)
	if err != nil {
		return nil, chatservice.NewStorageError("create_chat", "could not create chat", err)
	}
	return createdChat, nil
}

// GetUserChats lists the user's chats, most recently updated first.
func (s *ChatService) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, chatservice.NewStorageError("list_chats", "could not list chats", err)
	}
	return chats, nil
}

// GetChat returns a chat and its messages, oldest first.
func (s *ChatService) GetChat(ctx context.Context, userID uint, chatID string) (*domain.Chat, []domain.Message, error) {
	chatRecord, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, nil, chatservice.NewNotFoundError(userID, chatID)
		}
		return nil, nil, chatservice.NewStorageError("get_chat", "could not fetch chat", err)
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID, 0)
	if err != nil {
		return nil, nil, chatservice.NewStorageError("get_chat", "could not fetch messages", err)
	}
	return chatRecord, messages, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, userID uint, chatID string) error {
	if err := s.chatRepo.Delete(ctx, chatID, userID); err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return chatservice.NewNotFoundError(userID, chatID)
		}
		return chatservice.NewStorageError("delete_chat", "could not delete chat", err)
	}

	// Messages are removed explicitly; the schema's ON DELETE CASCADE is
	// only the backstop for databases that enforce it.
	if err := s.messageRepo.DeleteByChatID(ctx, chatID); err != nil {
		s.logger.Warn("failed to remove messages of deleted chat", "chat_id", chatID, "error", err)
	}
	return nil
}

// requireOwnership resolves the chat for userID, distinguishing a missing
// or foreign chat from a storage failure.
func (s *ChatService) requireOwnership(ctx context.Context, userID uint, chatID, operation string) error {
	if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID); err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return chatservice.NewNotFoundError(userID, chatID)
		}
		return chatservice.NewStorageError(operation, "could not fetch chat", err)
	}
	return nil
}

func (s *ChatService) RenameChat(ctx context.Context, userID uint, chatID, title string) error {
	if strings.TrimSpace(title) == "" {
		return chatservice.NewValidationError("rename_chat", "title is required")
	}

	if err := s.chatRepo.UpdateTitle(ctx, chatID, userID, title); err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return chatservice.NewNotFoundError(userID, chatID)
		}
		return chatservice.NewStorageError("rename_chat", "could not rename chat", err)
	}
	return nil
}

// ClearMessages removes every message but keeps the chat shell.
func (s *ChatService) ClearMessages(ctx context.Context, userID uint, chatID string) error {
	if err := s.requireOwnership(ctx, userID, chatID, "clear_chat"); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteByChatID(ctx, chatID); err != nil {
		return chatservice.NewStorageError("clear_chat", "could not clear messages", err)
	}
	return nil
}

// SendMessage runs one full exchange: validate ownership, persist the user
// message, assemble the prompt from recent history, call the completion
// service, format and persist the reply. An upstream failure degrades into
// a visible assistant reply instead of failing the request.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, chatID, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", chatservice.NewValidationError("send_message", "message cannot be empty")
	}
	if runes := []rune(content); len(runes) > s.config.MaxMessageLength {
		content = string(runes[:s.config.MaxMessageLength])
	}

	if err := s.requireOwnership(ctx, userID, chatID, "send_message"); err != nil {
		return "", err
	}

	// History is captured before the new message is appended, so the
	// prompt never repeats the current question inside the transcript.
	history, err := s.messageRepo.FindRecentByChatID(ctx, chatID, s.config.HistoryFetchLimit)
	if err != nil {
		return "", chatservice.NewStorageError("send_message", "could not fetch history", err)
	}

	if err := s.appendMessage(ctx, chatID, domain.RoleUser, content); err != nil {
		return "", err
	}

	displayName := ""
	if account, err := s.userRepo.FindByID(ctx, userID); err == nil {
		displayName = account.DisplayName()
	}

	prompt := chatservice.AssemblePrompt(content, toHistory(history), displayName, s.config.PromptHistorySize)

	var reply string
	rawReply, err := s.completion.GetCompletion(ctx, prompt)
	if err != nil {
		s.logger.Error("completion failed, storing visible error reply",
			"chat_id", chatID, "user_id", userID, "error", err)
		reply = upstreamFailureReply
	} else {
		reply = chatservice.FormatResponse(rawReply)
	}

	if err := s.appendMessage(ctx, chatID, domain.RoleAssistant, reply); err != nil {
		return "", err
	}

	s.maybeAssignTitle(ctx, userID, chatID, content)

	return reply, nil
}

// appendMessage persists one message and bumps the chat's recency stamp.
// The two writes are sequential; a crash between them only stales the
// listing order, never the message log.
func (s *ChatService) appendMessage(ctx context.Context, chatID, role, content string) error {
	if _, err := s.messageRepo.Create(ctx, &domain.Message{
		ChatID:  chatID,
		Role:    role,
		Content: content,
	}); err != nil {
		return chatservice.NewStorageError("append_message", "could not store message", err)
	}

	if err := s.chatRepo.TouchUpdatedAt(ctx, chatID); err != nil {
		s.logger.Warn("failed to bump chat timestamp", "chat_id", chatID, "error", err)
	}
	return nil
}

// maybeAssignTitle derives the chat title from the first user message once
// the first question/answer pair is stored. One-shot: it never re-triggers
// on later exchanges.
func (s *ChatService) maybeAssignTitle(ctx context.Context, userID uint, chatID, firstMessage string) {
	count, err := s.messageRepo.CountByChatID(ctx, chatID)
	if err != nil || count != 2 {
		return
	}

	title := firstMessage
	if runes := []rune(title); len(runes) > s.config.TitleMaxLength {
		title = string(runes[:s.config.TitleMaxLength]) + "..."
	}

	if err := s.chatRepo.UpdateTitle(ctx, chatID, userID, title); err != nil {
		s.logger.Warn("failed to assign derived title", "chat_id", chatID, "error", err)
	}
}

func toHistory(messages []domain.Message) []chatservice.HistoryEntry {
	history := make([]chatservice.HistoryEntry, len(messages))
	for i, m := range messages {
		history[i] = chatservice.HistoryEntry{Role: m.Role, Content: m.Content}
	}
	return history
}
