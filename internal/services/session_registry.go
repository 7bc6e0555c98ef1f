package services

import (
	"sync"
	"time"

	"tsehay_admin/internal/models"
	"tsehay_admin/internal/repositories"
)

// AdminSession ties an authenticated session to its dashboard and notifications.
type AdminSession struct {
	models.Session
	Dashboard     *Dashboard
	Notifications *NotificationQueue
}

// SessionRegistry keeps the live admin sessions in memory.
type SessionRegistry struct {
	data repositories.DataService
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*AdminSession
}

// NewSessionRegistry creates a registry whose dashboards read from data.
func NewSessionRegistry(data repositories.DataService) *SessionRegistry {
	return &SessionRegistry{
		data:     data,
		now:      time.Now,
		sessions: make(map[string]*AdminSession),
	}
}

// Open registers a session with a fresh, unmounted dashboard.
func (r *SessionRegistry) Open(session models.Session) *AdminSession {
	queue := &NotificationQueue{}
	s := &AdminSession{
		Session:       session,
		Dashboard:     NewDashboard(r.data, queue),
		Notifications: queue,
	}

	r.mu.Lock()
	r.sessions[session.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns a live session. Expired sessions are dropped.
func (r *SessionRegistry) Get(id string) (*AdminSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if !s.ExpiresAt.IsZero() && !r.now().Before(s.ExpiresAt) {
		delete(r.sessions, id)
		return nil, false
	}
	return s, true
}

// Close drops a session and its dashboard.
func (r *SessionRegistry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Sweep drops every expired session and returns how many were removed.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of registered sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
