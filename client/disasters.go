package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"

	"siaga-bencana/internal/domain"
)

const createKey = "create"

// DisasterManager keeps the local view of disaster reports. The store is
// authoritative: mutations go to the store first and the cache only changes
// when the store accepts, so a rejected call never leaves phantom state
// behind. A failed refresh keeps the previous cache intact.
type DisasterManager struct {
	client  *Client
	session *SessionManager

	mu       sync.RWMutex
	cache    []domain.DisasterReport
	inflight map[string]struct{}
}

// NewDisasterManager returns a manager with an empty cache.
func NewDisasterManager(client *Client, session *SessionManager) *DisasterManager {
	return &DisasterManager{
		client:   client,
		session:  session,
		inflight: make(map[string]struct{}),
	}
}

// begin claims the in-flight slot for key. A second claim while the first is
// outstanding fails with ErrRequestInFlight.
func (m *DisasterManager) begin(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inflight[key]; busy {
		return fmt.Errorf("%w: %s", ErrRequestInFlight, key)
	}
	m.inflight[key] = struct{}{}
	return nil
}

func (m *DisasterManager) end(key string) {
	m.mu.Lock()
	delete(m.inflight, key)
	m.mu.Unlock()
}

// validateReport rejects records whose enum fields fall outside the closed
// sets, so a drifted store cannot poison the cache.
func validateReport(r *domain.DisasterReport) error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown disaster type %q", ErrDeserialization, r.Type)
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("%w: unknown severity %q", ErrDeserialization, r.Severity)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrDeserialization, r.Status)
	}
	return nil
}

// FetchAll refreshes the cache from the store. On success the cache is
// replaced wholesale with the store's collection; on any failure it returns
// a FetchError and the cache keeps its previous contents.
func (m *DisasterManager) FetchAll(ctx context.Context) ([]domain.DisasterReport, error) {
	var fetched []domain.DisasterReport
	if err := m.client.do(ctx, http.MethodGet, "/disasters", nil, &fetched); err != nil {
		return nil, &FetchError{Err: err}
	}
	for i := range fetched {
		if err := validateReport(&fetched[i]); err != nil {
			return nil, &FetchError{Err: err}
		}
	}

	m.mu.Lock()
	m.cache = fetched
	m.mu.Unlock()

	return m.Snapshot(), nil
}

// Create submits a new report. The store assigns id, pending status,
// coordinates and timestamps; the accepted record is appended to the cache.
func (m *DisasterManager) Create(ctx context.Context, input domain.CreateDisasterInput) (*domain.DisasterReport, error) {
	identity := m.session.Current()
	if identity == nil {
		return nil, ErrAuthRequired
	}
	if err := m.begin(createKey); err != nil {
		return nil, err
	}
	defer m.end(createKey)

	ref := identity.Ref()
	input.ReportedBy = &ref

	var created domain.DisasterReport
	if err := m.client.do(ctx, http.MethodPost, "/disasters", input, &created); err != nil {
		return nil, &CreateError{Err: err}
	}
	if err := validateReport(&created); err != nil {
		return nil, &CreateError{Err: err}
	}

	m.mu.Lock()
	m.cache = append(m.cache, created)
	m.mu.Unlock()

	record := created
	return &record, nil
}

// UpdateStatus asks the store to move a report to status. The store enforces
// the lifecycle; on acceptance the returned record replaces the cached one
// wholesale. An unknown id returns ErrNotFound, an illegal move returns a
// TransitionError wrapping ErrInvalidTransition, and in both cases the cache
// is untouched.
func (m *DisasterManager) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DisasterStatus, volunteerID *uuid.UUID) (*domain.DisasterReport, error) {
	if m.session.Current() == nil {
		return nil, ErrAuthRequired
	}
	key := id.String()
	if err := m.begin(key); err != nil {
		return nil, err
	}
	defer m.end(key)

	input := domain.UpdateStatusInput{Status: status, VolunteerID: volunteerID}

	var updated domain.DisasterReport
	err := m.client.do(ctx, http.MethodPatch, "/disasters/"+id.String()+"/status", input, &updated)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
			case http.StatusUnprocessableEntity:
				return nil, &TransitionError{Err: fmt.Errorf("%w: %s", ErrInvalidTransition, apiErr.Message)}
			}
		}
		return nil, &TransitionError{Err: err}
	}
	if err := validateReport(&updated); err != nil {
		return nil, &TransitionError{Err: err}
	}

	m.mu.Lock()
	for i := range m.cache {
		if m.cache[i].ID == updated.ID {
			m.cache[i] = updated
			break
		}
	}
	m.mu.Unlock()

	record := updated
	return &record, nil
}

// Get returns the report with the given id, from the cache when present and
// from the store otherwise. A store miss returns ErrNotFound. The fetched
// record is not inserted into the cache; only FetchAll and mutations move it.
func (m *DisasterManager) Get(ctx context.Context, id uuid.UUID) (*domain.DisasterReport, error) {
	m.mu.RLock()
	for i := range m.cache {
		if m.cache[i].ID == id {
			record := m.cache[i]
			m.mu.RUnlock()
			return &record, nil
		}
	}
	m.mu.RUnlock()

	var fetched domain.DisasterReport
	if err := m.client.do(ctx, http.MethodGet, "/disasters/"+id.String(), nil, &fetched); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, &FetchError{Err: err}
	}
	if err := validateReport(&fetched); err != nil {
		return nil, &FetchError{Err: err}
	}

	record := fetched
	return &record, nil
}

// Snapshot returns a copy of the cached collection.
func (m *DisasterManager) Snapshot() []domain.DisasterReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.DisasterReport, len(m.cache))
	copy(out, m.cache)
	return out
}

// UserView filters the cache to the reports identity submitted.
func (m *DisasterManager) UserView(identity *domain.User) []domain.DisasterReport {
	if identity == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.DisasterReport
	for i := range m.cache {
		if m.cache[i].ReportedBy.ID == identity.ID {
			out = append(out, m.cache[i])
		}
	}
	return out
}

// VolunteerView filters the cache to the reports identity can act on: every
// pending report plus the ones already assigned to them. Pending work sorts
// first, most severe on top, so the list reads as a work queue.
func (m *DisasterManager) VolunteerView(identity *domain.User) []domain.DisasterReport {
	if identity == nil {
		return nil
	}
	m.mu.RLock()
	var out []domain.DisasterReport
	for i := range m.cache {
		r := &m.cache[i]
		if r.Status == domain.StatusPending || (r.AssignedTo != nil && r.AssignedTo.ID == identity.ID) {
			out = append(out, m.cache[i])
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Status == domain.StatusPending, out[j].Status == domain.StatusPending
		if pi != pj {
			return pi
		}
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}
