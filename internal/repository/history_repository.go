package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siaga-bencana/internal/domain"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByDisaster(ctx context.Context, disasterID uuid.UUID) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `
		INSERT INTO disaster_history (id, disaster_id, updated_by, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.DisasterID, entry.UpdatedBy, entry.Note,
	).Scan(&entry.CreatedAt)
}

func (r *historyRepository) ListByDisaster(ctx context.Context, disasterID uuid.UUID) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	query := `
		SELECT h.id, h.disaster_id, h.updated_by, u.name AS updated_by_name, h.note, h.created_at
		FROM disaster_history h
		LEFT JOIN users u ON u.id = h.updated_by
		WHERE h.disaster_id = $1
		ORDER BY h.created_at ASC`

	err := r.db.SelectContext(ctx, &entries, query, disasterID)
	return entries, err
}
