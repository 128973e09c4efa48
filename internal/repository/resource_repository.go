package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siaga-bencana/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	GetAll(ctx context.Context) ([]domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (id, name, category, quantity, location, status, added_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING last_updated`

	return r.db.QueryRowxContext(ctx, query,
		resource.ID, resource.Name, resource.Category, resource.Quantity,
		resource.Location, resource.Status, resource.AddedBy,
	).Scan(&resource.LastUpdated)
}

func (r *resourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var resource domain.Resource
	query := `SELECT * FROM resources WHERE id = $1`

	err := r.db.GetContext(ctx, &resource, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) GetAll(ctx context.Context) ([]domain.Resource, error) {
	var resources []domain.Resource
	query := `SELECT * FROM resources ORDER BY last_updated DESC`

	err := r.db.SelectContext(ctx, &resources, query)
	return resources, err
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET name = $2, category = $3, quantity = $4, location = $5, status = $6, last_updated = NOW()
		WHERE id = $1
		RETURNING last_updated`

	var lastUpdated time.Time
	err := r.db.QueryRowxContext(ctx, query,
		resource.ID, resource.Name, resource.Category, resource.Quantity,
		resource.Location, resource.Status,
	).Scan(&lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("resource not found")
	}
	resource.LastUpdated = lastUpdated
	return err
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resources WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
