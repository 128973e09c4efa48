package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"siaga-bencana/internal/domain"
)

type DisasterRepository struct {
	mock.Mock
}

func (m *DisasterRepository) Create(ctx context.Context, report *domain.DisasterReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *DisasterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DisasterReport), args.Error(1)
}

func (m *DisasterRepository) GetAll(ctx context.Context) ([]domain.DisasterReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DisasterReport), args.Error(1)
}

func (m *DisasterRepository) UpdateStatus(ctx context.Context, report *domain.DisasterReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *DisasterRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	args := m.Called(ctx, id, images)
	return args.Error(0)
}
