package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"siaga-bencana/internal/domain"
)

type DisasterRepository interface {
	Create(ctx context.Context, report *domain.DisasterReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error)
	GetAll(ctx context.Context) ([]domain.DisasterReport, error)
	UpdateStatus(ctx context.Context, report *domain.DisasterReport) error
	UpdateImages(ctx context.Context, id uuid.UUID, images []string) error
}

type disasterRepository struct {
	db *sqlx.DB
}

func NewDisasterRepository(db *sqlx.DB) DisasterRepository {
	return &disasterRepository{db: db}
}

// disasterRow is the flat column mapping; the API shape nests location and
// identity references.
type disasterRow struct {
	ID             uuid.UUID      `db:"id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Type           string         `db:"type"`
	Severity       string         `db:"severity"`
	Address        string         `db:"address"`
	Lat            float64        `db:"lat"`
	Lng            float64        `db:"lng"`
	Status         string         `db:"status"`
	ReportedByID   uuid.UUID      `db:"reported_by_id"`
	ReportedByName string         `db:"reported_by_name"`
	AssignedToID   *uuid.UUID     `db:"assigned_to_id"`
	AssignedToName *string        `db:"assigned_to_name"`
	ReportedAt     time.Time      `db:"reported_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	Images         pq.StringArray `db:"images"`
}

func (r disasterRow) toDomain() domain.DisasterReport {
	report := domain.DisasterReport{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Type:        domain.DisasterType(r.Type),
		Severity:    domain.Severity(r.Severity),
		Location: domain.Location{
			Address:     r.Address,
			Coordinates: domain.Coordinates{Lat: r.Lat, Lng: r.Lng},
		},
		Status:     domain.DisasterStatus(r.Status),
		ReportedBy: domain.IdentityRef{ID: r.ReportedByID, Name: r.ReportedByName},
		ReportedAt: r.ReportedAt,
		UpdatedAt:  r.UpdatedAt,
		Images:     []string(r.Images),
	}
	if r.AssignedToID != nil {
		name := ""
		if r.AssignedToName != nil {
			name = *r.AssignedToName
		}
		report.AssignedTo = &domain.IdentityRef{ID: *r.AssignedToID, Name: name}
	}
	return report
}

func (r *disasterRepository) Create(ctx context.Context, report *domain.DisasterReport) error {
	query := `
		INSERT INTO disasters (id, title, description, type, severity, address, lat, lng, status,
			reported_by_id, reported_by_name, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING reported_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.Title, report.Description, report.Type, report.Severity,
		report.Location.Address, report.Location.Coordinates.Lat, report.Location.Coordinates.Lng,
		report.Status, report.ReportedBy.ID, report.ReportedBy.Name, pq.StringArray(report.Images),
	).Scan(&report.ReportedAt, &report.UpdatedAt)
}

func (r *disasterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error) {
	var row disasterRow
	query := `SELECT * FROM disasters WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	report := row.toDomain()
	return &report, nil
}

func (r *disasterRepository) GetAll(ctx context.Context) ([]domain.DisasterReport, error) {
	var rows []disasterRow
	query := `SELECT * FROM disasters ORDER BY reported_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	reports := make([]domain.DisasterReport, len(rows))
	for i, row := range rows {
		reports[i] = row.toDomain()
	}
	return reports, nil
}

// UpdateStatus persists the report's status and assignment and refreshes
// updated_at server-side, scanning the new value back into the report.
func (r *disasterRepository) UpdateStatus(ctx context.Context, report *domain.DisasterReport) error {
	query := `
		UPDATE disasters
		SET status = $2, assigned_to_id = $3, assigned_to_name = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	var assignedID *uuid.UUID
	var assignedName *string
	if report.AssignedTo != nil {
		assignedID = &report.AssignedTo.ID
		assignedName = &report.AssignedTo.Name
	}

	err := r.db.QueryRowxContext(ctx, query, report.ID, report.Status, assignedID, assignedName).
		Scan(&report.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("disaster not found")
	}
	return err
}

func (r *disasterRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	query := `UPDATE disasters SET images = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, id, pq.StringArray(images)).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("disaster not found")
	}
	return err
}
