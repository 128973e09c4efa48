package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"siaga-bencana/client"
	"siaga-bencana/internal/domain"
)

// stubStore is a minimal in-memory record store behind an httptest server.
// It enforces the same status lifecycle as the real service.
type stubStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*domain.DisasterReport
	user    *domain.User
	srv     *httptest.Server

	patchStarted chan struct{}
	patchRelease chan struct{}
}

func newStubStore(t *testing.T, user *domain.User) *stubStore {
	t.Helper()

	s := &stubStore{
		reports: make(map[uuid.UUID]*domain.DisasterReport),
		user:    user,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", s.handleLogin)
	mux.HandleFunc("GET /api/v1/disasters", s.handleList)
	mux.HandleFunc("GET /api/v1/disasters/{id}", s.handleGet)
	mux.HandleFunc("POST /api/v1/disasters", s.handleCreate)
	mux.HandleFunc("PATCH /api/v1/disasters/{id}/status", s.handleUpdateStatus)

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *stubStore) put(r domain.DisasterReport) {
	s.mu.Lock()
	record := r
	s.reports[r.ID] = &record
	s.mu.Unlock()
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}

func (s *stubStore) handleLogin(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"user":          s.user,
		"access_token":  "test-access-token",
		"refresh_token": "test-refresh-token",
		"expires_in":    900,
	})
}

func (s *stubStore) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]domain.DisasterReport, 0, len(s.reports))
	for _, record := range s.reports {
		out = append(out, *record)
	}
	s.mu.Unlock()
	json.NewEncoder(w).Encode(out)
}

func (s *stubStore) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}
	s.mu.Lock()
	record, ok := s.reports[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Disaster report not found")
		return
	}
	json.NewEncoder(w).Encode(record)
}

func (s *stubStore) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateDisasterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}

	now := time.Now().UTC()
	record := domain.DisasterReport{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Severity:    input.Severity,
		Location: domain.Location{
			Address:     input.Address,
			Coordinates: domain.Coordinates{Lat: -6.2, Lng: 106.8},
		},
		Status:     domain.StatusPending,
		ReportedBy: s.user.Ref(),
		ReportedAt: now,
		UpdatedAt:  now,
	}
	s.put(record)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (s *stubStore) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if s.patchStarted != nil {
		s.patchStarted <- struct{}{}
		<-s.patchRelease
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}
	var input domain.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.reports[id]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Disaster report not found")
		return
	}
	if !record.Status.CanTransitionTo(input.Status) {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_TRANSITION",
			"Cannot move from "+string(record.Status)+" to "+string(input.Status))
		return
	}

	record.Status = input.Status
	switch input.Status {
	case domain.StatusAccepted:
		ref := s.user.Ref()
		record.AssignedTo = &ref
	case domain.StatusDeclined:
		record.AssignedTo = nil
	}
	record.UpdatedAt = time.Now().UTC()

	json.NewEncoder(w).Encode(record)
}

func testUser(role string) *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Test " + role,
		Email: role + "@example.com",
		Role:  role,
	}
}

func testReport(reporter domain.IdentityRef, status domain.DisasterStatus) domain.DisasterReport {
	now := time.Now().UTC()
	return domain.DisasterReport{
		ID:          uuid.New(),
		Title:       "Flooding near the river",
		Description: "Water level rising fast, several houses cut off",
		Type:        domain.DisasterFlood,
		Severity:    domain.SeverityHigh,
		Location: domain.Location{
			Address:     "12 Riverside Road",
			Coordinates: domain.Coordinates{Lat: -6.2, Lng: 106.8},
		},
		Status:     status,
		ReportedBy: reporter,
		ReportedAt: now,
		UpdatedAt:  now,
	}
}

// signedIn returns a client and disaster manager logged in against the stub.
func signedIn(t *testing.T, store *stubStore, opts ...client.Option) (*client.Client, *client.SessionManager, *client.DisasterManager) {
	t.Helper()

	c := client.New(store.srv.URL, opts...)
	sessions := client.NewSessionManager(c, filepath.Join(t.TempDir(), "session.json"))
	_, err := sessions.Login(context.Background(), store.user.Email, "password123")
	assert.NoError(t, err)

	return c, sessions, client.NewDisasterManager(c, sessions)
}

func TestDisasterManager_FetchAll(t *testing.T) {
	user := testUser("user")
	store := newStubStore(t, user)
	ctx := context.Background()

	first := testReport(user.Ref(), domain.StatusPending)
	store.put(first)

	_, _, disasters := signedIn(t, store)

	t.Run("Replaces Cache Wholesale", func(t *testing.T) {
		got, err := disasters.FetchAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, first.ID, got[0].ID)

		second := testReport(user.Ref(), domain.StatusPending)
		store.put(second)

		got, err = disasters.FetchAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Failure Keeps Previous Cache", func(t *testing.T) {
		broken := client.New("http://127.0.0.1:1")
		brokenManager := client.NewDisasterManager(broken, client.NewSessionManager(broken, filepath.Join(t.TempDir(), "s.json")))

		before := disasters.Snapshot()
		assert.NotEmpty(t, before)

		_, err := brokenManager.FetchAll(ctx)
		var fetchErr *client.FetchError
		assert.ErrorAs(t, err, &fetchErr)

		assert.Equal(t, before, disasters.Snapshot())
	})
}

func TestDisasterManager_FetchAll_RejectsUnknownEnums(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"` + uuid.NewString() + `","title":"x","type":"meteor","severity":"high","status":"pending"}]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	disasters := client.NewDisasterManager(c, client.NewSessionManager(c, filepath.Join(t.TempDir(), "s.json")))

	_, err := disasters.FetchAll(context.Background())
	assert.ErrorIs(t, err, client.ErrDeserialization)
	assert.Empty(t, disasters.Snapshot())
}

func TestDisasterManager_Create(t *testing.T) {
	user := testUser("user")
	store := newStubStore(t, user)
	ctx := context.Background()

	input := domain.CreateDisasterInput{
		Title:       "Fire at the market",
		Description: "Smoke visible from three blocks, stalls burning",
		Type:        domain.DisasterFire,
		Severity:    domain.SeverityCritical,
		Address:     "Central Market, Block C",
	}

	t.Run("Requires Identity", func(t *testing.T) {
		c := client.New(store.srv.URL)
		anonymous := client.NewDisasterManager(c, client.NewSessionManager(c, filepath.Join(t.TempDir(), "s.json")))

		created, err := anonymous.Create(ctx, input)
		assert.ErrorIs(t, err, client.ErrAuthRequired)
		assert.Nil(t, created)
	})

	t.Run("Appends Accepted Record", func(t *testing.T) {
		_, _, disasters := signedIn(t, store)

		created, err := disasters.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, created.Status)
		assert.Equal(t, user.ID, created.ReportedBy.ID)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.UpdatedAt.Before(created.ReportedAt))

		cached := disasters.Snapshot()
		assert.Len(t, cached, 1)
		assert.Equal(t, created.ID, cached[0].ID)
	})

	t.Run("Round Trip By Id", func(t *testing.T) {
		_, _, disasters := signedIn(t, store)

		created, err := disasters.Create(ctx, input)
		assert.NoError(t, err)

		got, err := disasters.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, input.Title, got.Title)
		assert.Equal(t, input.Description, got.Description)
		assert.Equal(t, input.Type, got.Type)
		assert.Equal(t, input.Severity, got.Severity)
		assert.Equal(t, input.Address, got.Location.Address)
	})
}

func TestDisasterManager_UpdateStatus_Lifecycle(t *testing.T) {
	volunteer := testUser("volunteer")
	store := newStubStore(t, volunteer)
	ctx := context.Background()

	report := testReport(testUser("user").Ref(), domain.StatusPending)
	store.put(report)

	_, _, disasters := signedIn(t, store)
	_, err := disasters.FetchAll(ctx)
	assert.NoError(t, err)

	var acceptedAt time.Time

	t.Run("Pending To Accepted Assigns Volunteer", func(t *testing.T) {
		updated, err := disasters.UpdateStatus(ctx, report.ID, domain.StatusAccepted, &volunteer.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, updated.Status)
		assert.NotNil(t, updated.AssignedTo)
		assert.Equal(t, volunteer.ID, updated.AssignedTo.ID)
		assert.False(t, updated.UpdatedAt.Before(report.UpdatedAt))
		acceptedAt = updated.UpdatedAt

		cached := disasters.Snapshot()
		assert.Equal(t, domain.StatusAccepted, cached[0].Status)
	})

	t.Run("Accepted To Resolved", func(t *testing.T) {
		updated, err := disasters.UpdateStatus(ctx, report.ID, domain.StatusResolved, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusResolved, updated.Status)
		assert.False(t, updated.UpdatedAt.Before(acceptedAt))
	})

	t.Run("Terminal Status Rejected", func(t *testing.T) {
		before := disasters.Snapshot()

		_, err := disasters.UpdateStatus(ctx, report.ID, domain.StatusAccepted, &volunteer.ID)
		var transitionErr *client.TransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.ErrorIs(t, err, client.ErrInvalidTransition)

		assert.Equal(t, before, disasters.Snapshot())
	})

	t.Run("Unknown Id Leaves Cache Unchanged", func(t *testing.T) {
		before := disasters.Snapshot()

		_, err := disasters.UpdateStatus(ctx, uuid.New(), domain.StatusAccepted, &volunteer.ID)
		assert.ErrorIs(t, err, client.ErrNotFound)

		assert.Equal(t, before, disasters.Snapshot())
	})
}

func TestDisasterManager_Get(t *testing.T) {
	user := testUser("user")
	store := newStubStore(t, user)
	ctx := context.Background()

	cachedReport := testReport(user.Ref(), domain.StatusPending)
	storeOnly := testReport(user.Ref(), domain.StatusAccepted)
	store.put(cachedReport)

	_, _, disasters := signedIn(t, store)
	_, err := disasters.FetchAll(ctx)
	assert.NoError(t, err)

	store.put(storeOnly)

	t.Run("Cache Hit", func(t *testing.T) {
		got, err := disasters.Get(ctx, cachedReport.ID)
		assert.NoError(t, err)
		assert.Equal(t, cachedReport.ID, got.ID)
	})

	t.Run("Cache Miss Falls Back To Store", func(t *testing.T) {
		got, err := disasters.Get(ctx, storeOnly.ID)
		assert.NoError(t, err)
		assert.Equal(t, storeOnly.ID, got.ID)

		// a point read does not grow the cache
		assert.Len(t, disasters.Snapshot(), 1)
	})

	t.Run("Unknown Everywhere", func(t *testing.T) {
		got, err := disasters.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, client.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestDisasterManager_Views(t *testing.T) {
	reporter := testUser("user")
	volunteer := testUser("volunteer")
	other := testUser("user")

	store := newStubStore(t, reporter)

	mine := testReport(reporter.Ref(), domain.StatusPending)
	theirsPending := testReport(other.Ref(), domain.StatusPending)
	theirsPending.Severity = domain.SeverityCritical

	assignedToMe := testReport(other.Ref(), domain.StatusAccepted)
	assignedToMe.Severity = domain.SeverityLow
	ref := volunteer.Ref()
	assignedToMe.AssignedTo = &ref

	assignedElsewhere := testReport(other.Ref(), domain.StatusAccepted)
	otherRef := other.Ref()
	assignedElsewhere.AssignedTo = &otherRef

	for _, r := range []domain.DisasterReport{mine, theirsPending, assignedToMe, assignedElsewhere} {
		store.put(r)
	}

	_, _, disasters := signedIn(t, store)
	_, err := disasters.FetchAll(context.Background())
	assert.NoError(t, err)

	t.Run("UserView Only Own Reports", func(t *testing.T) {
		view := disasters.UserView(reporter)
		assert.Len(t, view, 1)
		assert.Equal(t, mine.ID, view[0].ID)
	})

	t.Run("VolunteerView Pending Plus Assigned", func(t *testing.T) {
		view := disasters.VolunteerView(volunteer)
		ids := make(map[uuid.UUID]bool, len(view))
		for _, r := range view {
			ids[r.ID] = true
		}
		assert.Len(t, view, 3)
		assert.True(t, ids[mine.ID])
		assert.True(t, ids[theirsPending.ID])
		assert.True(t, ids[assignedToMe.ID])
		assert.False(t, ids[assignedElsewhere.ID])
	})

	t.Run("VolunteerView Orders Work Queue", func(t *testing.T) {
		view := disasters.VolunteerView(volunteer)

		// pending before assigned, most severe pending first
		assert.Equal(t, theirsPending.ID, view[0].ID)
		assert.Equal(t, mine.ID, view[1].ID)
		assert.Equal(t, assignedToMe.ID, view[2].ID)
	})

	t.Run("Nil Identity Sees Nothing", func(t *testing.T) {
		assert.Empty(t, disasters.UserView(nil))
		assert.Empty(t, disasters.VolunteerView(nil))
	})
}

func TestDisasterManager_InFlightGuard(t *testing.T) {
	volunteer := testUser("volunteer")
	store := newStubStore(t, volunteer)
	ctx := context.Background()

	report := testReport(testUser("user").Ref(), domain.StatusPending)
	store.put(report)

	store.patchStarted = make(chan struct{}, 1)
	store.patchRelease = make(chan struct{})

	_, _, disasters := signedIn(t, store)
	_, err := disasters.FetchAll(ctx)
	assert.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := disasters.UpdateStatus(ctx, report.ID, domain.StatusAccepted, &volunteer.ID)
		done <- err
	}()

	// wait until the first request is inside the store handler
	<-store.patchStarted

	_, err = disasters.UpdateStatus(ctx, report.ID, domain.StatusDeclined, nil)
	assert.ErrorIs(t, err, client.ErrRequestInFlight)

	close(store.patchRelease)
	assert.NoError(t, <-done)

	// the slot frees once the first request finishes, but the record moved on
	_, err = disasters.UpdateStatus(ctx, report.ID, domain.StatusResolved, nil)
	assert.NoError(t, err)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithTimeout(50*time.Millisecond))
	disasters := client.NewDisasterManager(c, client.NewSessionManager(c, filepath.Join(t.TempDir(), "s.json")))

	_, err := disasters.FetchAll(context.Background())
	var fetchErr *client.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, client.ErrTimeout)
}
