package services

import (
	"sync"

	"tsehay_admin/internal/models"
)

// Notifier accepts toasts for the admin.
type Notifier interface {
	Notify(n models.Notification)
}

// NotificationQueue buffers notifications until the next render drains them.
type NotificationQueue struct {
	mu      sync.Mutex
	pending []models.Notification
}

// Notify appends n to the queue.
func (q *NotificationQueue) Notify(n models.Notification) {
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()
}

// Drain returns the queued notifications in order and empties the queue.
func (q *NotificationQueue) Drain() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued notifications.
func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func failureNotice(description string) models.Notification {
	return models.Notification{
		Title:       "Error",
		Description: description,
		Variant:     models.NotificationDestructive,
	}
}
