package audit

import (
	"context"
	"sync"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// StaticDirectory resolves actors from a fixed, in-memory roster. Hosts with a
// real account store supply their own interfaces.ActorDirectory.
type StaticDirectory struct {
	mu     sync.RWMutex
	actors map[uuid.UUID]interfaces.ActorSummary
}

// NewStaticDirectory seeds a directory with the given actors.
func NewStaticDirectory(actors ...interfaces.ActorSummary) *StaticDirectory {
	dir := &StaticDirectory{actors: make(map[uuid.UUID]interfaces.ActorSummary, len(actors))}
	for _, actor := range actors {
		dir.Register(actor)
	}
	return dir
}

// Register adds or replaces an actor. Summaries without an id are ignored.
func (d *StaticDirectory) Register(actor interfaces.ActorSummary) {
	if actor.ID == uuid.Nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actors[actor.ID] = actor
}

func (d *StaticDirectory) LookupActors(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]interfaces.ActorSummary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[uuid.UUID]interfaces.ActorSummary, len(ids))
	for _, id := range ids {
		if actor, ok := d.actors[id]; ok {
			out[id] = actor
		}
	}
	return out, nil
}
