package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ChatRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewChatRepository(db *sqlx.DB, log *slog.Logger) *ChatRepository {
	return &ChatRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (cr *ChatRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	const op = "internal.repository.postgres.chat.Create"

	query, args, err := cr.sq.Insert("chat_messages").
		Columns("id", "username", "message", "created_at").
		Values(msg.ID, msg.Username, msg.Message, msg.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := cr.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to insert chat message: %w", op, err)
	}

	return nil
}

func (cr *ChatRepository) Recent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	const op = "internal.repository.postgres.chat.Recent"

	query, args, err := cr.sq.Select("id", "username", "message", "created_at").
		From("chat_messages").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	messages := []domain.ChatMessage{}
	if err := cr.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select chat messages: %w", op, err)
	}

	return messages, nil
}
