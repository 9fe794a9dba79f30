package event

import "github.com/l1jgo/ecscore/internal/core/ecs"

// World lifecycle events.

type EntityDestroyed struct {
	ID ecs.EntityID
}

type WorldResized struct {
	World    uint16
	Capacity int
}
