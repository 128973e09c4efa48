package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one line of a report's incident log: who changed what,
// when. Entries are append-only.
type HistoryEntry struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DisasterID    uuid.UUID `json:"disaster_id" db:"disaster_id"`
	UpdatedBy     uuid.UUID `json:"updated_by" db:"updated_by"`
	UpdatedByName *string   `json:"updated_by_name,omitempty" db:"updated_by_name"`
	Note          string    `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
