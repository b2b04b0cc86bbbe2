package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

var studyMaterialColumns = []string{
	"id", "title", "description", "category", "link", "file_type", "difficulty",
	"posted_by", "likes", "views", "tags", "created_at",
}

type StudyMaterialRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewStudyMaterialRepository(db *sqlx.DB, log *slog.Logger) *StudyMaterialRepository {
	return &StudyMaterialRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (sr *StudyMaterialRepository) Create(ctx context.Context, m *domain.StudyMaterial) error {
	const op = "internal.repository.postgres.studymaterial.Create"

	if m.Tags == nil {
		m.Tags = []string{}
	}

	query, args, err := sr.sq.Insert("study_materials").
		Columns(studyMaterialColumns...).
		Values(m.ID, m.Title, m.Description, m.Category, m.Link, m.FileType, m.Difficulty,
			m.PostedBy, m.Likes, m.Views, m.Tags, m.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := sr.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to insert study material: %w", op, err)
	}

	return nil
}

func (sr *StudyMaterialRepository) List(ctx context.Context) ([]domain.StudyMaterial, error) {
	const op = "internal.repository.postgres.studymaterial.List"

	query, args, err := sr.sq.Select(studyMaterialColumns...).
		From("study_materials").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	materials := []domain.StudyMaterial{}
	if err := sr.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select study materials: %w", op, err)
	}

	return materials, nil
}
