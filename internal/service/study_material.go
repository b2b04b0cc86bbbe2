package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/internal/repository"
	"github.com/google/uuid"
)

type StudyMaterialInput struct {
	Title       string
	Description string
	Category    string
	Link        string
	FileType    string
	Difficulty  string
	Tags        []string
}

type StudyMaterialService interface {
	List(ctx context.Context) ([]domain.StudyMaterial, error)
	Create(ctx context.Context, userID string, in StudyMaterialInput) (*domain.StudyMaterial, error)
}

type StudyMaterialServiceImpl struct {
	log       *slog.Logger
	materials repository.StudyMaterialRepository
}

func NewStudyMaterialService(log *slog.Logger, materials repository.StudyMaterialRepository) *StudyMaterialServiceImpl {
	return &StudyMaterialServiceImpl{log: log, materials: materials}
}

func (s *StudyMaterialServiceImpl) List(ctx context.Context) ([]domain.StudyMaterial, error) {
	const op = "internal.service.studymaterial.List"

	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return materials, nil
}

func (s *StudyMaterialServiceImpl) Create(ctx context.Context, userID string, in StudyMaterialInput) (*domain.StudyMaterial, error) {
	const op = "internal.service.studymaterial.Create"

	m := &domain.StudyMaterial{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Link:        in.Link,
		FileType:    optional(in.FileType),
		Difficulty:  optional(in.Difficulty),
		PostedBy:    userID,
		Tags:        in.Tags,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.materials.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("study material created", slog.String("op", op), slog.String("material_id", m.ID))

	return m, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
