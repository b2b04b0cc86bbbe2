package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

var questionColumns = []string{
	"id", "company", "role", "question", "round", "difficulty", "frequency",
	"frequency_count", "likes", "views", "posted_by", "created_at",
}

var questionSortColumns = map[domain.QuestionSort]string{
	domain.SortViews:     "views DESC",
	domain.SortLikes:     "likes DESC",
	domain.SortFrequency: "frequency_count DESC",
}

type QuestionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewQuestionRepository(db *sqlx.DB, log *slog.Logger) *QuestionRepository {
	return &QuestionRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (qr *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	const op = "internal.repository.postgres.question.Create"

	query, args, err := qr.sq.Insert("questions").
		Columns(questionColumns...).
		Values(q.ID, q.Company, q.Role, q.Question, q.Round, q.Difficulty, q.Frequency,
			q.FrequencyCount, q.Likes, q.Views, q.PostedBy, q.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := qr.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to insert question: %w", op, err)
	}

	return nil
}

// List matches company and role case-insensitively as substrings; difficulty
// and frequency must match exactly.
func (qr *QuestionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	const op = "internal.repository.postgres.question.List"

	qb := qr.sq.Select(questionColumns...).From("questions")

	if filter.Company != "" {
		qb = qb.Where(sq.ILike{"company": likePattern(filter.Company)})
	}

	if filter.Role != "" {
		qb = qb.Where(sq.ILike{"role": likePattern(filter.Role)})
	}

	if filter.Difficulty != "" {
		qb = qb.Where(sq.Eq{"difficulty": filter.Difficulty})
	}

	if filter.Frequency != "" {
		qb = qb.Where(sq.Eq{"frequency": filter.Frequency})
	}

	if order, ok := questionSortColumns[filter.SortBy]; ok {
		qb = qb.OrderBy(order, "created_at DESC")
	} else {
		qb = qb.OrderBy("created_at DESC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	questions := []domain.Question{}
	if err := qr.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select questions: %w", op, err)
	}

	return questions, nil
}

func (qr *QuestionRepository) GetByID(ctx context.Context, ext sqlx.QueryerContext, id string) (*domain.Question, error) {
	const op = "internal.repository.postgres.question.GetByID"

	query, args, err := qr.sq.Select(questionColumns...).
		From("questions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var q domain.Question
	if err := sqlx.GetContext(ctx, ext, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: question with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get question: %w", op, err)
	}

	return &q, nil
}

func (qr *QuestionRepository) IncrementLikes(ctx context.Context, tx *sqlx.Tx, id string) (*domain.Question, error) {
	const op = "internal.repository.postgres.question.IncrementLikes"

	return qr.increment(ctx, tx, op, "likes", id)
}

func (qr *QuestionRepository) IncrementViews(ctx context.Context, id string) (*domain.Question, error) {
	const op = "internal.repository.postgres.question.IncrementViews"

	return qr.increment(ctx, qr.db, op, "views", id)
}

func (qr *QuestionRepository) increment(ctx context.Context, ext sqlx.QueryerContext, op, column, id string) (*domain.Question, error) {
	query, args, err := qr.sq.Update("questions").
		Set(column, sq.Expr(column+" + 1")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(questionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var q domain.Question
	if err := ext.QueryRowxContext(ctx, query, args...).StructScan(&q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: question with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to increment %s: %w", op, column, err)
	}

	return &q, nil
}

func likePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return "%" + replacer.Replace(s) + "%"
}
