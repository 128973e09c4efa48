package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ListVolunteers(ctx context.Context) ([]domain.User, error)
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) Service {
	return &service{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Availability != nil {
		user.Availability = input.Availability
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount soft-deletes the user and revokes their refresh sessions.
// The email stays claimed; re-registration with it is not possible.
func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.sessionRepo.RevokeAllForUser(ctx, id)
}

func (s *service) ListVolunteers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListVolunteers(ctx)
}
