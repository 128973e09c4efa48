package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/mocks"
	"siaga-bencana/internal/service/user"
)

func newTestService() (user.Service, *mocks.UserRepository, *mocks.SessionRepository) {
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)
	return user.NewService(userRepo, sessionRepo), userRepo, sessionRepo
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	stored := &domain.User{
		ID:    uuid.New(),
		Name:  "Ayu Lestari",
		Email: "ayu@example.com",
		Role:  "volunteer",
	}

	t.Run("Merges Only Provided Fields", func(t *testing.T) {
		svc, userRepo, _ := newTestService()

		newName := "Ayu L."
		availability := domain.AvailabilityBusy

		current := *stored
		userRepo.On("GetByID", ctx, stored.ID).Return(&current, nil).Once()
		userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == newName &&
				u.Email == stored.Email &&
				u.Availability != nil && *u.Availability == domain.AvailabilityBusy
		})).Return(nil).Once()

		updated, err := svc.UpdateProfile(ctx, stored.ID, domain.UpdateUserInput{
			Name:         &newName,
			Availability: &availability,
		})

		assert.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
		assert.Equal(t, stored.Email, updated.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, userRepo, _ := newTestService()
		id := uuid.New()

		userRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		updated, err := svc.UpdateProfile(ctx, id, domain.UpdateUserInput{})

		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.Nil(t, updated)
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes And Revokes Sessions", func(t *testing.T) {
		svc, userRepo, sessionRepo := newTestService()
		stored := &domain.User{ID: uuid.New(), Email: "ayu@example.com", Role: "user"}

		userRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
		userRepo.On("Delete", ctx, stored.ID).Return(nil).Once()
		sessionRepo.On("RevokeAllForUser", ctx, stored.ID).Return(nil).Once()

		assert.NoError(t, svc.DeleteAccount(ctx, stored.ID))

		userRepo.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, userRepo, _ := newTestService()
		id := uuid.New()

		userRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.DeleteAccount(ctx, id)

		assert.ErrorIs(t, err, user.ErrUserNotFound)
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
