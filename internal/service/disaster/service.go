package disaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/pkg/geocode"
	"siaga-bencana/internal/repository"
	"siaga-bencana/internal/service/email"
)

var (
	ErrDisasterNotFound  = errors.New("disaster report not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotAssigned       = errors.New("only the assigned volunteer can resolve a report")
	ErrVolunteerMismatch = errors.New("volunteer id does not match the authenticated user")
)

const (
	cacheKey = "disasters:all"
	cacheTTL = 5 * time.Minute
)

type Service interface {
	Create(ctx context.Context, reporter *domain.User, input domain.CreateDisasterInput) (*domain.DisasterReport, error)
	GetAll(ctx context.Context) ([]domain.DisasterReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateStatusInput) (*domain.DisasterReport, error)
	History(ctx context.Context, id uuid.UUID) ([]domain.HistoryEntry, error)
	AddImage(ctx context.Context, id uuid.UUID, imageURL string) (*domain.DisasterReport, error)
}

type service struct {
	disasterRepo repository.DisasterRepository
	historyRepo  repository.HistoryRepository
	userRepo     repository.UserRepository
	redis        *redis.Client
	emailSvc     email.Service
}

func NewService(disasterRepo repository.DisasterRepository, historyRepo repository.HistoryRepository, userRepo repository.UserRepository, redis *redis.Client, emailSvc email.Service) Service {
	return &service{
		disasterRepo: disasterRepo,
		historyRepo:  historyRepo,
		userRepo:     userRepo,
		redis:        redis,
		emailSvc:     emailSvc,
	}
}

func (s *service) Create(ctx context.Context, reporter *domain.User, input domain.CreateDisasterInput) (*domain.DisasterReport, error) {
	report := &domain.DisasterReport{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Severity:    input.Severity,
		Location: domain.Location{
			Address:     input.Address,
			Coordinates: geocode.Approximate(input.Address),
		},
		Status:     domain.StatusPending,
		ReportedBy: reporter.Ref(),
		Images:     input.Images,
	}

	if err := s.disasterRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logHistory(ctx, report.ID, reporter.ID, fmt.Sprintf("Report submitted by %s", reporter.Name))
	s.invalidateCache(ctx)

	return report, nil
}

func (s *service) GetAll(ctx context.Context) ([]domain.DisasterReport, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var reports []domain.DisasterReport
			if json.Unmarshal([]byte(cached), &reports) == nil {
				return reports, nil
			}
		}
	}

	reports, err := s.disasterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(reports); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, cacheTTL).Err()
		}
	}

	return reports, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error) {
	report, err := s.disasterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrDisasterNotFound
	}
	return report, nil
}

// UpdateStatus applies one lifecycle transition. The record is re-read and
// the transition validated against its current state, so a stale caller gets
// ErrInvalidTransition instead of clobbering a concurrent change.
func (s *service) UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateStatusInput) (*domain.DisasterReport, error) {
	report, err := s.disasterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrDisasterNotFound
	}

	if !report.Status.CanTransitionTo(input.Status) {
		return nil, ErrInvalidTransition
	}

	previous := report.Status

	switch input.Status {
	case domain.StatusAccepted:
		if input.VolunteerID != nil && *input.VolunteerID != actor.ID && !actor.HasRole("admin") {
			return nil, ErrVolunteerMismatch
		}
		ref := actor.Ref()
		report.AssignedTo = &ref
	case domain.StatusDeclined:
		report.AssignedTo = nil
	case domain.StatusResolved:
		if report.AssignedTo == nil || (report.AssignedTo.ID != actor.ID && !actor.HasRole("admin")) {
			return nil, ErrNotAssigned
		}
	}

	report.Status = input.Status

	if err := s.disasterRepo.UpdateStatus(ctx, report); err != nil {
		return nil, err
	}

	s.logHistory(ctx, report.ID, actor.ID,
		fmt.Sprintf("Status changed from %s to %s by %s", previous, report.Status, actor.Name))
	s.invalidateCache(ctx)

	if input.Status == domain.StatusResolved && report.AssignedTo != nil {
		if err := s.userRepo.IncrementCompletedTasks(ctx, report.AssignedTo.ID); err != nil {
			fmt.Printf("Failed to increment completed tasks for %s: %v\n", report.AssignedTo.ID, err)
		}
	}

	if input.Status == domain.StatusAccepted {
		s.notifyReporterAccepted(ctx, report, actor.Name)
	}

	return report, nil
}

func (s *service) History(ctx context.Context, id uuid.UUID) ([]domain.HistoryEntry, error) {
	report, err := s.disasterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrDisasterNotFound
	}
	return s.historyRepo.ListByDisaster(ctx, id)
}

func (s *service) AddImage(ctx context.Context, id uuid.UUID, imageURL string) (*domain.DisasterReport, error) {
	report, err := s.disasterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrDisasterNotFound
	}

	report.Images = append(report.Images, imageURL)
	if err := s.disasterRepo.UpdateImages(ctx, id, report.Images); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return report, nil
}

func (s *service) logHistory(ctx context.Context, disasterID, userID uuid.UUID, note string) {
	entry := &domain.HistoryEntry{
		ID:         uuid.New(),
		DisasterID: disasterID,
		UpdatedBy:  userID,
		Note:       note,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		fmt.Printf("Failed to write history entry for %s: %v\n", disasterID, err)
	}
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, cacheKey).Err()
	}
}

func (s *service) notifyReporterAccepted(ctx context.Context, report *domain.DisasterReport, volunteerName string) {
	if s.emailSvc == nil {
		return
	}

	reporter, err := s.userRepo.GetByID(ctx, report.ReportedBy.ID)
	if err != nil || reporter == nil || reporter.Email == "" {
		return
	}

	go func(toEmail, reporterName, title string) {
		ctx := context.Background()
		if err := s.emailSvc.SendAssignmentEmail(ctx, toEmail, reporterName, volunteerName, title); err != nil {
			fmt.Printf("Failed to send assignment email: %v\n", err)
		}
	}(reporter.Email, reporter.Name, report.Title)
}
