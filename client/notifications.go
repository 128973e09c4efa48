package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxNotifications bounds the feed; the oldest entries are dropped first.
const maxNotifications = 200

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

type RelatedKind string

const (
	RelatedDisaster RelatedKind = "disaster"
	RelatedUser     RelatedKind = "user"
)

// RelatedRef points a notification at the record it is about.
type RelatedRef struct {
	Kind RelatedKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	RelatedTo *RelatedRef      `json:"related_to,omitempty"`
}

// NotificationManager is an in-memory feed. Entries live for the process
// lifetime only and are never persisted.
type NotificationManager struct {
	mu    sync.RWMutex
	items []Notification
}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{}
}

// Add appends an unread notification stamped with a fresh id and the current
// time, evicting the oldest entry once the feed is full.
func (m *NotificationManager) Add(message string, typ NotificationType, related *RelatedRef) Notification {
	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now(),
		RelatedTo: related,
	}

	m.mu.Lock()
	m.items = append(m.items, n)
	if len(m.items) > maxNotifications {
		m.items = m.items[len(m.items)-maxNotifications:]
	}
	m.mu.Unlock()

	return n
}

// MarkRead marks one notification read. An unknown id is a no-op.
func (m *NotificationManager) MarkRead(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsRead = true
			return
		}
	}
}

// MarkAllRead marks every notification read.
func (m *NotificationManager) MarkAllRead() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		m.items[i].IsRead = true
	}
}

// UnreadCount returns how many notifications are unread.
func (m *NotificationManager) UnreadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for i := range m.items {
		if !m.items[i].IsRead {
			count++
		}
	}
	return count
}

// List returns the feed newest first.
func (m *NotificationManager) List() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Notification, len(m.items))
	for i := range m.items {
		out[i] = m.items[len(m.items)-1-i]
	}
	return out
}
