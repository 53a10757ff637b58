package services

import (
	"context"

	"github.com/askk-pro/karyayana/internal/domain"
	"github.com/askk-pro/karyayana/internal/errors"
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
)

type soundService struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewSoundService creates a read-only sound catalog service.
func NewSoundService(repo sqlite.Repository) SoundService {
	return &soundService{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// GetSound retrieves a sound by ID.
func (s *soundService) GetSound(ctx context.Context, id string) (*domain.Sound, error) {
	if id == "" {
		return nil, errors.NewInvalidInputError("id", id, "sound ID cannot be empty")
	}
	dbSound, err := s.repo.GetSound(ctx, id)
	if err != nil {
		return nil, err
	}
	sound := s.mapper.Sound.FromDatabase(*dbSound)
	return &sound, nil
}

// ListSounds retrieves all sounds, newest first.
func (s *soundService) ListSounds(ctx context.Context) ([]domain.Sound, error) {
	dbSounds, err := s.repo.ListSounds(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Sound.FromDatabaseSlice(dbSounds), nil
}
