package entity

import (
	"fmt"

	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

// NewPlayerAt builds the player at spawn and remembers it for respawning.
func NewPlayerAt(w *ecs.World, spawn component.Spawn) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, spawn.X, spawn.Y, spawn.Z, spawn.Yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	s := spawn
	if err := ecs.Add(w, entity, component.SpawnComponent.Kind(), &s); err != nil {
		return 0, fmt.Errorf("player: add spawn: %w", err)
	}
	return entity, nil
}
