package domain

import "github.com/google/uuid"

// ActorRole is the capacity in which a user acted on a booking.
type ActorRole string

const (
	RoleClient   ActorRole = "client"
	RoleProvider ActorRole = "provider"
	RoleAdmin    ActorRole = "admin"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}
