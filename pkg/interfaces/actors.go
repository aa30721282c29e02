package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// ActorSummary describes an admin account for audit attribution.
type ActorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

// ActorDirectory looks up admin accounts owned by the authentication
// collaborator. Unknown identifiers are simply absent from the result.
type ActorDirectory interface {
	LookupActors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ActorSummary, error)
}
