package entity

import (
	"fmt"

	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"github.com/milk9111/quarterturn/levels"
)

// Scene is a populated world: level blocks, the player and its camera.
type Scene struct {
	Level  *levels.Level
	Spawn  component.Spawn
	Player ecs.Entity
	Camera ecs.Entity
}

// LoadScene fills w with the named level, then places the player at the
// level spawn with the camera behind it.
func LoadScene(w *ecs.World, levelName string) (*Scene, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	spawn, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	player, err := NewPlayerAt(w, spawn)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	camera, err := NewCameraFor(w, player)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{Level: lvl, Spawn: spawn, Player: player, Camera: camera}, nil
}

// ReloadLevel swaps the blocks of w for those of levelName. The player keeps
// its position; only the spawn point is updated.
func (s *Scene) ReloadLevel(w *ecs.World, levelName string) error {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return fmt.Errorf("scene: reload: %w", err)
	}
	ClearLevel(w)
	spawn, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		return fmt.Errorf("scene: reload: %w", err)
	}
	s.Level = lvl
	s.Spawn = spawn
	if sp, ok := ecs.Get(w, s.Player, component.SpawnComponent.Kind()); ok {
		*sp = spawn
	}
	return nil
}
