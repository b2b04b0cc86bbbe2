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

type ProfileMaterialInput struct {
	Title       string
	Description string
	Link        string
	Category    string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error)
	Materials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error)
	AddMaterial(ctx context.Context, userID string, in ProfileMaterialInput) (*domain.ProfileMaterial, error)
	RemoveMaterial(ctx context.Context, userID, materialID string) error
}

type ProfileServiceImpl struct {
	log   *slog.Logger
	users repository.UserRepository
}

func NewProfileService(log *slog.Logger, users repository.UserRepository) *ProfileServiceImpl {
	return &ProfileServiceImpl{log: log, users: users}
}

func (s *ProfileServiceImpl) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	const op = "internal.service.profile.Get"

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	liked, err := s.users.LikedQuestions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	materials, err := s.users.ProfileMaterials(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.Profile{User: *user, LikedQuestions: liked, StudyMaterials: materials}, nil
}

func (s *ProfileServiceImpl) LikedQuestions(ctx context.Context, userID string) ([]domain.Question, error) {
	const op = "internal.service.profile.LikedQuestions"

	liked, err := s.users.LikedQuestions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

func (s *ProfileServiceImpl) Materials(ctx context.Context, userID string) ([]domain.ProfileMaterial, error) {
	const op = "internal.service.profile.Materials"

	materials, err := s.users.ProfileMaterials(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return materials, nil
}

func (s *ProfileServiceImpl) AddMaterial(ctx context.Context, userID string, in ProfileMaterialInput) (*domain.ProfileMaterial, error) {
	const op = "internal.service.profile.AddMaterial"

	m := &domain.ProfileMaterial{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		Category:    in.Category,
		AddedAt:     time.Now().UTC(),
	}

	if err := s.users.AddProfileMaterial(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("profile material added", slog.String("op", op), slog.String("user_id", userID), slog.String("material_id", m.ID))

	return m, nil
}

func (s *ProfileServiceImpl) RemoveMaterial(ctx context.Context, userID, materialID string) error {
	const op = "internal.service.profile.RemoveMaterial"

	if err := checkID(op, "study material", materialID); err != nil {
		return err
	}

	if err := s.users.RemoveProfileMaterial(ctx, userID, materialID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
