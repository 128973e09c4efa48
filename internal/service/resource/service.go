package resource

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/repository"
)

var ErrResourceNotFound = errors.New("resource not found")

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateResourceInput) (*domain.Resource, error)
	GetAll(ctx context.Context) ([]domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	resourceRepo repository.ResourceRepository
}

func NewService(resourceRepo repository.ResourceRepository) Service {
	return &service{resourceRepo: resourceRepo}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateResourceInput) (*domain.Resource, error) {
	resource := &domain.Resource{
		ID:       uuid.New(),
		Name:     input.Name,
		Category: input.Category,
		Quantity: input.Quantity,
		Location: input.Location,
		Status:   domain.ResourceAvailable,
		AddedBy:  userID,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *service) GetAll(ctx context.Context) ([]domain.Resource, error) {
	return s.resourceRepo.GetAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	if input.Name != nil {
		resource.Name = *input.Name
	}
	if input.Category != nil {
		resource.Category = *input.Category
	}
	if input.Quantity != nil {
		resource.Quantity = *input.Quantity
		if resource.Quantity == 0 {
			resource.Status = domain.ResourceDepleted
		}
	}
	if input.Location != nil {
		resource.Location = *input.Location
	}
	if input.Status != nil {
		resource.Status = *input.Status
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if resource == nil {
		return ErrResourceNotFound
	}
	return s.resourceRepo.Delete(ctx, id)
}
