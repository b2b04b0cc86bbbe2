package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

type CalendarGrantRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewCalendarGrantRepository(db *sqlx.DB, log *slog.Logger) *CalendarGrantRepository {
	return &CalendarGrantRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

// Upsert keeps the stored refresh token when the provider does not return a new one.
func (gr *CalendarGrantRepository) Upsert(ctx context.Context, grant *domain.CalendarGrant) error {
	const op = "internal.repository.postgres.calendargrant.Upsert"

	query, args, err := gr.sq.Insert("calendar_grants").
		Columns("user_id", "access_token", "refresh_token", "token_type", "expiry", "updated_at").
		Values(grant.UserID, grant.AccessToken, grant.RefreshToken, grant.TokenType, grant.Expiry, grant.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), calendar_grants.refresh_token),
			token_type = EXCLUDED.token_type,
			expiry = EXCLUDED.expiry,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	if _, err := gr.db.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, grant.UserID)
		}

		return fmt.Errorf("%s: failed to upsert calendar grant: %w", op, err)
	}

	return nil
}

func (gr *CalendarGrantRepository) Get(ctx context.Context, userID string) (*domain.CalendarGrant, error) {
	const op = "internal.repository.postgres.calendargrant.Get"

	query, args, err := gr.sq.Select("user_id", "access_token", "refresh_token", "token_type", "expiry", "updated_at").
		From("calendar_grants").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var grant domain.CalendarGrant
	if err := gr.db.GetContext(ctx, &grant, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: calendar grant for user '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to get calendar grant: %w", op, err)
	}

	return &grant, nil
}
