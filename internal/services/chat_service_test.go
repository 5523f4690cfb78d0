// File: internal/services/chat_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	chatrepo "github.com/ayazdoruck/pahiy-ai/internal/repository/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/message"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
	chatservice "github.com/ayazdoruck/pahiy-ai/internal/services/chat"
)

type fakeCompletion struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompletion) GetCompletion(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestChatService(t *testing.T) (*ChatService, *fakeCompletion, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}))

	completion := &fakeCompletion{reply: "plain answer"}
	svc, err := NewChatService(
		chatrepo.NewChatRepository(db),
		message.NewMessageRepository(db),
		user.NewGormUserRepository(db),
		completion,
		&NoOpLogger{},
	)
	require.NoError(t, err)
	return svc, completion, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	account := &domain.User{
		FirstName: "Deniz",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "irrelevant-hash",
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func TestCreateChat_DefaultTitle(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultChatTitle, chat.Title)
	assert.NotEmpty(t, chat.ID)
}

func TestSendMessage_StoresExchangeAndFormats(t *testing.T) {
	svc, completion, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")
	completion.reply = "**bold** answer"

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "<strong>bold</strong> answer", reply)

	_, messages, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "<strong>bold</strong> answer", messages[1].Content)
}

func TestSendMessage_AutoTitleAfterFirstExchange(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.NoError(t, err)

	renamed, _, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", renamed.Title)
}

func TestSendMessage_AutoTitleTruncation(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	long := strings.Repeat("a", 60)
	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, long)
	require.NoError(t, err)

	renamed, _, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50)+"...", renamed.Title)
}

func TestSendMessage_AutoTitleOnlyOnce(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "first question")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "second question")
	require.NoError(t, err)

	current, _, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "first question", current.Title)
}

func TestSendMessage_PromptCarriesEarlierTurns(t *testing.T) {
	svc, completion, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")
	completion.reply = "noted"

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "my name is Ece")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "what is my name?")
	require.NoError(t, err)

	require.Len(t, completion.prompts, 2)

	first := completion.prompts[0]
	assert.Contains(t, first, "No conversation yet.")
	assert.Contains(t, first, "CURRENT QUESTION: my name is Ece")

	second := completion.prompts[1]
	assert.Contains(t, second, "User: my name is Ece")
	assert.Contains(t, second, "Assistant: noted")
	assert.Contains(t, second, "CURRENT QUESTION: what is my name?")
	// The current question appears once, never echoed into the history.
	assert.Equal(t, 1, strings.Count(second, "what is my name?"))
	// The user's display name reaches the persona block.
	assert.Contains(t, second, "The user's name is Deniz.")
}

func TestSendMessage_UpstreamFailureBecomesVisibleReply(t *testing.T) {
	svc, completion, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")
	completion.err = errors.New("upstream timeout")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, upstreamFailureReply, reply)

	// The degraded reply is part of the permanent transcript.
	_, messages, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, upstreamFailureReply, messages[1].Content)
}

func TestSendMessage_OwnershipEnforced(t *testing.T) {
	svc, _, db := newTestChatService(t)
	owner := seedUser(t, db, "owner")
	intruder := seedUser(t, db, "intruder")

	chat, err := svc.CreateChat(context.Background(), owner.ID, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), intruder.ID, chat.ID, "hi")
	assert.True(t, chatservice.IsNotFound(err))

	_, _, err = svc.GetChat(context.Background(), intruder.ID, chat.ID)
	assert.True(t, chatservice.IsNotFound(err))

	err = svc.DeleteChat(context.Background(), intruder.ID, chat.ID)
	assert.True(t, chatservice.IsNotFound(err))

	// The owner is unaffected.
	_, _, err = svc.GetChat(context.Background(), owner.ID, chat.ID)
	assert.NoError(t, err)
}

func TestSendMessage_EmptyMessageRejected(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "   ")
	assert.True(t, chatservice.IsValidation(err))
}

func TestClearMessages_KeepsChatShell(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, svc.ClearMessages(context.Background(), account.ID, chat.ID))

	kept, messages, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Equal(t, chat.ID, kept.ID)
}

func TestDeleteChat_RemovesMessages(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.NoError(t, err)

	var before int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", chat.ID).Count(&before).Error)
	require.EqualValues(t, 2, before)

	require.NoError(t, svc.DeleteChat(context.Background(), account.ID, chat.ID))

	// No orphan rows may survive the chat.
	var after int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", chat.ID).Count(&after).Error)
	assert.EqualValues(t, 0, after)
}

func TestOwnershipCheck_StorageFailureIsNotNotFound(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A database outage must surface as a storage error, never as a
	// missing chat.
	_, _, err = svc.GetChat(context.Background(), account.ID, chat.ID)
	require.Error(t, err)
	assert.False(t, chatservice.IsNotFound(err))

	_, err = svc.SendMessage(context.Background(), account.ID, chat.ID, "hello")
	require.Error(t, err)
	assert.False(t, chatservice.IsNotFound(err))

	err = svc.ClearMessages(context.Background(), account.ID, chat.ID)
	require.Error(t, err)
	assert.False(t, chatservice.IsNotFound(err))
}

func TestRenameAndDeleteChat(t *testing.T) {
	svc, _, db := newTestChatService(t)
	account := seedUser(t, db, "deniz")

	chat, err := svc.CreateChat(context.Background(), account.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.RenameChat(context.Background(), account.ID, chat.ID, "Trip planning"))
	renamed, _, err := svc.GetChat(context.Background(), account.ID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning", renamed.Title)

	err = svc.RenameChat(context.Background(), account.ID, chat.ID, "  ")
	assert.True(t, chatservice.IsValidation(err))

	require.NoError(t, svc.DeleteChat(context.Background(), account.ID, chat.ID))
	_, _, err = svc.GetChat(context.Background(), account.ID, chat.ID)
	assert.True(t, chatservice.IsNotFound(err))

	chats, err := svc.GetUserChats(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Empty(t, chats)
}
