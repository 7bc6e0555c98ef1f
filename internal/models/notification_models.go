package models

// NotificationVariant defines the presentation style of a notification.
type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = ""
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a toast shown to the admin after an action.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant,omitempty"`
}

// IsDestructive reports whether the notification signals a failure.
func (n Notification) IsDestructive() bool {
	return n.Variant == NotificationDestructive
}
