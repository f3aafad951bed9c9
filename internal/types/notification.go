package types

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient notice shown to the user until ExpiresAt.
type Notification struct {
	Kind      NotificationKind `json:"kind" example:"success"`
	Message   string           `json:"message"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Response is the generic envelope for message-only responses.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation successful"`
	Error   string `json:"error,omitempty" example:"Resource not found"`
}
