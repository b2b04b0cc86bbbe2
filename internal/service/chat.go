package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/google/uuid"
)

// Broadcaster delivers a stored message to connected chat clients.
type Broadcaster interface {
	Publish(ctx context.Context, msg domain.ChatMessage) error
}

type ChatService interface {
	History(ctx context.Context) ([]domain.ChatMessage, error)
	Post(ctx context.Context, handle, message string) (*domain.ChatMessage, error)
}

type ChatServiceImpl struct {
	log         *slog.Logger
	messages    repository.ChatRepository
	broadcaster Broadcaster
}

func NewChatService(log *slog.Logger, messages repository.ChatRepository, broadcaster Broadcaster) *ChatServiceImpl {
	return &ChatServiceImpl{
		log:         log,
		messages:    messages,
		broadcaster: broadcaster,
	}
}

func (s *ChatServiceImpl) History(ctx context.Context) ([]domain.ChatMessage, error) {
	const op = "internal.service.chat.History"

	messages, err := s.messages.Recent(ctx, domain.ChatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return messages, nil
}

// Post stores the message before broadcasting it. A failed broadcast is only
// logged since the message is already in the history.
func (s *ChatServiceImpl) Post(ctx context.Context, handle, message string) (*domain.ChatMessage, error) {
	const op = "internal.service.chat.Post"
	log := s.log.With(slog.String("op", op), slog.String("username", handle))

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationError(op, "message must not be empty")
	}

	msg := &domain.ChatMessage{
		ID:        uuid.NewString(),
		Username:  handle,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.broadcaster.Publish(ctx, *msg); err != nil {
		log.Warn("failed to broadcast chat message", sl.Err(err))
	}

	return msg, nil
}
