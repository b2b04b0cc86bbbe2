package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var userColumns = []string{
	"id", "handle", "full_name", "email", "password_hash", "college", "branch",
	"year_of_study", "bio", "profile_picture", "created_at", "last_login",
}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (ur *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.user.Create"

	query, args, err := ur.sq.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Handle, user.FullName, user.Email, user.PasswordHash, user.College,
			user.Branch, user.YearOfStudy, user.Bio, user.ProfilePicture, user.CreatedAt, user.LastLogin).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqUniqueViolation {
			return duplicateUserError(err, user)
		}

		return fmt.Errorf("%s: failed to insert user: %w", op, err)
	}

	return nil
}

// duplicateUserError reports only the field named by the violated constraint.
func duplicateUserError(err error, user *domain.User) error {
	dup := &apperrors.UserAlreadyExistsError{}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && strings.Contains(pqErr.Constraint, "handle") {
		dup.Handle = user.Handle
	} else {
		dup.Email = user.Email
	}

	return dup
}

func (ur *UserRepository) getBy(ctx context.Context, op, column, value string) (*domain.User, error) {
	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with %s '%s'", op, apperrors.ErrNotFound, column, value)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return ur.getBy(ctx, "internal.repository.postgres.user.GetByID", "id", id)
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ur.getBy(ctx, "internal.repository.postgres.user.GetByEmail", "email", email)
}

func (ur *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	const op = "internal.repository.postgres.user.TouchLastLogin"

	query, args, err := ur.sq.Update("users").
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to update last login: %w", op, err)
	}

	return nil
}

func (ur *UserRepository) LikeQuestion(ctx context.Context, tx *sqlx.Tx, userID, questionID string) (bool, error) {
	const op = "internal.repository.postgres.user.LikeQuestion"

	query, args, err := ur.sq.Insert("liked_questions").
		Columns("user_id", "question_id").
		Values(userID, questionID).
		Suffix("ON CONFLICT (user_id, question_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return false, fmt.Errorf("%s: %w: question with id '%s'", op, apperrors.ErrNotFound, questionID)
		}

		return false, fmt.Errorf("%s: failed to record like: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return affected == 1, nil
}

func (ur *UserRepository) LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error) {
	const op = "internal.repository.postgres.user.LikedQuestions"

	cols := make([]string, len(questionColumns))
	for i, c := range questionColumns {
		cols[i] = "q." + c
	}

	query, args, err := ur.sq.Select(cols...).
		From("liked_questions lq").
		Join("questions q ON q.id = lq.question_id").
		Where(sq.Eq{"lq.user_id": userID}).
		OrderBy("lq.liked_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	questions := []domain.Question{}
	if err := ur.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select liked questions: %w", op, err)
	}

	return questions, nil
}

func (ur *UserRepository) AddProfileMaterial(ctx context.Context, m *domain.ProfileMaterial) error {
	const op = "internal.repository.postgres.user.AddProfileMaterial"

	query, args, err := ur.sq.Insert("profile_materials").
		Columns("id", "user_id", "title", "description", "link", "category", "added_at").
		Values(m.ID, m.UserID, m.Title, m.Description, m.Link, m.Category, m.AddedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, m.UserID)
		}

		return fmt.Errorf("%s: failed to insert profile material: %w", op, err)
	}

	return nil
}

func (ur *UserRepository) ProfileMaterials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error) {
	const op = "internal.repository.postgres.user.ProfileMaterials"

	query, args, err := ur.sq.Select("id", "user_id", "title", "description", "link", "category", "added_at").
		From("profile_materials").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("added_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	materials := []domain.ProfileMaterial{}
	if err := ur.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select profile materials: %w", op, err)
	}

	return materials, nil
}

func (ur *UserRepository) RemoveProfileMaterial(ctx context.Context, userID, materialID string) error {
	const op = "internal.repository.postgres.user.RemoveProfileMaterial"

	query, args, err := ur.sq.Delete("profile_materials").
		Where(sq.Eq{"id": materialID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete profile material: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: study material with id '%s'", op, apperrors.ErrNotFound, materialID)
	}

	return nil
}
