package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"siaga-bencana/internal/domain"
)

// authResponse matches the body of POST /users and POST /sessions.
type authResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// persistedSession is the on-disk shape of a signed-in identity. One file,
// one session.
type persistedSession struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// SessionManager owns the signed-in identity. A successful login or
// registration installs the identity and its tokens on the Client and
// persists them, so a new process resumes the same session.
type SessionManager struct {
	client *Client
	path   string

	mu           sync.RWMutex
	current      *domain.User
	refreshToken string
}

// NewSessionManager returns a manager persisting to path. If the file holds
// a previous session it is restored; a missing or unreadable file just means
// starting signed out.
func NewSessionManager(client *Client, path string) *SessionManager {
	m := &SessionManager{client: client, path: path}
	m.restore()
	return m
}

// Current returns the signed-in user, or nil when signed out.
func (m *SessionManager) Current() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	user := *m.current
	return &user
}

// RefreshToken returns the stored refresh token, or "" when signed out.
func (m *SessionManager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshToken
}

// Login exchanges credentials for a session. A rejected login returns an
// AuthenticationError and leaves any previous identity untouched.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	input := domain.LoginInput{Email: email, Password: password}

	var resp authResponse
	if err := m.client.do(ctx, http.MethodPost, "/sessions", input, &resp); err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, &AuthenticationError{Err: ErrDeserialization}
	}

	m.install(resp)
	return m.Current(), nil
}

// Register creates an account and signs it in. A rejected registration, a
// duplicate email for instance, returns a RegistrationError.
func (m *SessionManager) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	var resp authResponse
	if err := m.client.do(ctx, http.MethodPost, "/users", input, &resp); err != nil {
		return nil, &RegistrationError{Err: err}
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, &RegistrationError{Err: ErrDeserialization}
	}

	m.install(resp)
	return m.Current(), nil
}

// Logout clears the local identity. The store-side revocation is best
// effort; the local session is gone either way.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.client.do(ctx, http.MethodDelete, "/sessions", nil, nil); err != nil {
		fmt.Printf("revoke session: %v\n", err)
	}

	m.mu.Lock()
	m.current = nil
	m.refreshToken = ""
	m.mu.Unlock()

	m.client.SetAccessToken("")
	os.Remove(m.path)
}

// Refresh trades the stored refresh token for a new token pair.
func (m *SessionManager) Refresh(ctx context.Context) error {
	m.mu.RLock()
	token := m.refreshToken
	m.mu.RUnlock()
	if token == "" {
		return ErrAuthRequired
	}

	body := map[string]string{"refresh_token": token}
	var resp authResponse
	if err := m.client.do(ctx, http.MethodPost, "/sessions/refresh", body, &resp); err != nil {
		return &AuthenticationError{Err: err}
	}

	m.mu.Lock()
	m.refreshToken = resp.RefreshToken
	m.mu.Unlock()
	m.client.SetAccessToken(resp.AccessToken)
	m.persist()
	return nil
}

// UpdateProfile merges the given fields into the current identity and
// re-persists it. The change is local; nothing is sent to the store.
func (m *SessionManager) UpdateProfile(input domain.UpdateUserInput) (*domain.User, error) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil, ErrAuthRequired
	}
	if input.Name != nil {
		m.current.Name = *input.Name
	}
	if input.Location != nil {
		m.current.Location = input.Location
	}
	if input.Phone != nil {
		m.current.Phone = input.Phone
	}
	if input.Skills != nil {
		m.current.Skills = input.Skills
	}
	if input.Availability != nil {
		m.current.Availability = input.Availability
	}
	m.mu.Unlock()

	m.persist()
	return m.Current(), nil
}

func (m *SessionManager) install(resp authResponse) {
	m.mu.Lock()
	m.current = resp.User
	m.refreshToken = resp.RefreshToken
	m.mu.Unlock()

	m.client.SetAccessToken(resp.AccessToken)
	m.persist()
}

func (m *SessionManager) restore() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}

	var stored persistedSession
	if err := json.Unmarshal(data, &stored); err != nil || stored.User == nil {
		if err == nil {
			err = errors.New("empty session")
		}
		fmt.Printf("restore session from %s: %v\n", m.path, err)
		return
	}

	m.mu.Lock()
	m.current = stored.User
	m.refreshToken = stored.RefreshToken
	m.mu.Unlock()
	m.client.SetAccessToken(stored.AccessToken)
}

func (m *SessionManager) persist() {
	m.mu.RLock()
	stored := persistedSession{
		User:         m.current,
		AccessToken:  m.client.token(),
		RefreshToken: m.refreshToken,
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		fmt.Printf("encode session: %v\n", err)
		return
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		fmt.Printf("persist session to %s: %v\n", m.path, err)
	}
}
