package events

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserUpdated     EventType = "user_updated"
	EventUserDeactivated EventType = "user_deactivated"
	EventUserLoggedIn    EventType = "user_logged_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string        `json:"email"`
	Roles []domain.Role `json:"roles"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	ChangedFields []string `json:"changed_fields"`
}

// UserDeactivatedPayload payload.
type UserDeactivatedPayload struct {
	Email string `json:"email"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Email string `json:"email"`
}
