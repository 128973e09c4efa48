package disaster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/mocks"
	"siaga-bencana/internal/service/disaster"
)

func newTestService() (disaster.Service, *mocks.DisasterRepository, *mocks.HistoryRepository, *mocks.UserRepository) {
	disasterRepo := new(mocks.DisasterRepository)
	historyRepo := new(mocks.HistoryRepository)
	userRepo := new(mocks.UserRepository)
	svc := disaster.NewService(disasterRepo, historyRepo, userRepo, nil, nil)
	return svc, disasterRepo, historyRepo, userRepo
}

func reporter() *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Ayu", Email: "ayu@example.com", Role: "user"}
}

func volunteer() *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Budi", Email: "budi@example.com", Role: "volunteer"}
}

func pendingReport(reportedBy domain.IdentityRef) *domain.DisasterReport {
	return &domain.DisasterReport{
		ID:          uuid.New(),
		Title:       "Flooding near the river",
		Description: "Water level rising fast",
		Type:        domain.DisasterFlood,
		Severity:    domain.SeverityHigh,
		Status:      domain.StatusPending,
		ReportedBy:  reportedBy,
	}
}

func TestDisasterService_Create(t *testing.T) {
	ctx := context.Background()
	user := reporter()

	input := domain.CreateDisasterInput{
		Title:       "Fire at the market",
		Description: "Smoke visible from three blocks",
		Type:        domain.DisasterFire,
		Severity:    domain.SeverityCritical,
		Address:     "Central Market, Block C",
	}

	t.Run("Success", func(t *testing.T) {
		svc, disasterRepo, historyRepo, _ := newTestService()

		disasterRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.DisasterReport) bool {
			return r.Status == domain.StatusPending &&
				r.ReportedBy.ID == user.ID &&
				r.Title == input.Title &&
				r.ID != uuid.Nil
		})).Return(nil).Once()

		historyRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.HistoryEntry) bool {
			return e.UpdatedBy == user.ID
		})).Return(nil).Once()

		report, err := svc.Create(ctx, user, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, report.Status)
		assert.Equal(t, user.Name, report.ReportedBy.Name)
		assert.Equal(t, input.Address, report.Location.Address)
		assert.NotZero(t, report.Location.Coordinates.Lng)

		disasterRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()

		disasterRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		report, err := svc.Create(ctx, user, input)

		assert.Error(t, err)
		assert.Nil(t, report)
	})
}

func TestDisasterService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		expected := pendingReport(reporter().Ref())

		disasterRepo.On("GetByID", ctx, expected.ID).Return(expected, nil).Once()

		report, err := svc.GetByID(ctx, expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, expected, report)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		id := uuid.New()

		disasterRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		report, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, disaster.ErrDisasterNotFound)
		assert.Nil(t, report)
	})
}

func TestDisasterService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Accept Assigns Volunteer", func(t *testing.T) {
		svc, disasterRepo, historyRepo, _ := newTestService()
		actor := volunteer()
		report := pendingReport(reporter().Ref())

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
		disasterRepo.On("UpdateStatus", ctx, mock.MatchedBy(func(r *domain.DisasterReport) bool {
			return r.Status == domain.StatusAccepted &&
				r.AssignedTo != nil && r.AssignedTo.ID == actor.ID
		})).Return(nil).Once()
		historyRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{
			Status:      domain.StatusAccepted,
			VolunteerID: &actor.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, updated.Status)
		assert.Equal(t, actor.Name, updated.AssignedTo.Name)

		disasterRepo.AssertExpectations(t)
	})

	t.Run("Accept Rejects Mismatched Volunteer Id", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		actor := volunteer()
		report := pendingReport(reporter().Ref())
		otherID := uuid.New()

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()

		updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{
			Status:      domain.StatusAccepted,
			VolunteerID: &otherID,
		})

		assert.ErrorIs(t, err, disaster.ErrVolunteerMismatch)
		assert.Nil(t, updated)
		disasterRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Decline Clears Assignment", func(t *testing.T) {
		svc, disasterRepo, historyRepo, _ := newTestService()
		actor := volunteer()
		report := pendingReport(reporter().Ref())

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
		disasterRepo.On("UpdateStatus", ctx, mock.MatchedBy(func(r *domain.DisasterReport) bool {
			return r.Status == domain.StatusDeclined && r.AssignedTo == nil
		})).Return(nil).Once()
		historyRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{
			Status: domain.StatusDeclined,
		})

		assert.NoError(t, err)
		assert.Nil(t, updated.AssignedTo)
	})

	t.Run("Resolve By Assigned Volunteer Increments Tasks", func(t *testing.T) {
		svc, disasterRepo, historyRepo, userRepo := newTestService()
		actor := volunteer()
		report := pendingReport(reporter().Ref())
		report.Status = domain.StatusAccepted
		ref := actor.Ref()
		report.AssignedTo = &ref

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
		disasterRepo.On("UpdateStatus", ctx, mock.Anything).Return(nil).Once()
		historyRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("IncrementCompletedTasks", ctx, actor.ID).Return(nil).Once()

		updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{
			Status: domain.StatusResolved,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusResolved, updated.Status)
		userRepo.AssertExpectations(t)
	})

	t.Run("Resolve By Unassigned Volunteer Forbidden", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		actor := volunteer()
		report := pendingReport(reporter().Ref())
		report.Status = domain.StatusAccepted
		otherRef := volunteer().Ref()
		report.AssignedTo = &otherRef

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()

		updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{
			Status: domain.StatusResolved,
		})

		assert.ErrorIs(t, err, disaster.ErrNotAssigned)
		assert.Nil(t, updated)
	})

	t.Run("Resolve By Admin Allowed", func(t *testing.T) {
		svc, disasterRepo, historyRepo, userRepo := newTestService()
		admin := &domain.User{ID: uuid.New(), Name: "Admin", Role: "admin"}
		assigned := volunteer()
		report := pendingReport(reporter().Ref())
		report.Status = domain.StatusAccepted
		ref := assigned.Ref()
		report.AssignedTo = &ref

		disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
		disasterRepo.On("UpdateStatus", ctx, mock.Anything).Return(nil).Once()
		historyRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		userRepo.On("IncrementCompletedTasks", ctx, assigned.ID).Return(nil).Once()

		_, err := svc.UpdateStatus(ctx, admin, report.ID, domain.UpdateStatusInput{
			Status: domain.StatusResolved,
		})

		assert.NoError(t, err)
	})

	t.Run("Invalid Transitions", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		actor := volunteer()

		cases := []struct {
			name string
			from domain.DisasterStatus
			to   domain.DisasterStatus
		}{
			{"Pending To Resolved", domain.StatusPending, domain.StatusResolved},
			{"Declined To Accepted", domain.StatusDeclined, domain.StatusAccepted},
			{"Resolved To Pending", domain.StatusResolved, domain.StatusPending},
			{"Accepted To Declined", domain.StatusAccepted, domain.StatusDeclined},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				report := pendingReport(reporter().Ref())
				report.Status = tc.from

				disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()

				updated, err := svc.UpdateStatus(ctx, actor, report.ID, domain.UpdateStatusInput{Status: tc.to})

				assert.ErrorIs(t, err, disaster.ErrInvalidTransition)
				assert.Nil(t, updated)
			})
		}

		disasterRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		svc, disasterRepo, _, _ := newTestService()
		id := uuid.New()

		disasterRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		updated, err := svc.UpdateStatus(ctx, volunteer(), id, domain.UpdateStatusInput{
			Status: domain.StatusAccepted,
		})

		assert.ErrorIs(t, err, disaster.ErrDisasterNotFound)
		assert.Nil(t, updated)
	})
}

func TestDisasterService_History(t *testing.T) {
	ctx := context.Background()
	svc, disasterRepo, historyRepo, _ := newTestService()
	report := pendingReport(reporter().Ref())

	entries := []domain.HistoryEntry{
		{ID: uuid.New(), DisasterID: report.ID, Note: "Report submitted by Ayu"},
		{ID: uuid.New(), DisasterID: report.ID, Note: "Status changed from pending to accepted by Budi"},
	}

	disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
	historyRepo.On("ListByDisaster", ctx, report.ID).Return(entries, nil).Once()

	got, err := svc.History(ctx, report.ID)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, entries[0].Note, got[0].Note)
}

func TestDisasterService_AddImage(t *testing.T) {
	ctx := context.Background()
	svc, disasterRepo, _, _ := newTestService()
	report := pendingReport(reporter().Ref())

	disasterRepo.On("GetByID", ctx, report.ID).Return(report, nil).Once()
	disasterRepo.On("UpdateImages", ctx, report.ID, mock.MatchedBy(func(images []string) bool {
		return len(images) == 1 && images[0] == "https://cdn.example.com/a.jpg"
	})).Return(nil).Once()

	updated, err := svc.AddImage(ctx, report.ID, "https://cdn.example.com/a.jpg")

	assert.NoError(t, err)
	assert.Len(t, updated.Images, 1)
	disasterRepo.AssertExpectations(t)
}
