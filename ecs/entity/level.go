package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"github.com/milk9111/quarterturn/levels"
	"github.com/milk9111/quarterturn/prefabs"
	"golang.org/x/image/colornames"
)

// LoadLevelToWorld creates one Block entity per level block and returns the
// level spawn point.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (component.Spawn, error) {
	if w == nil || lvl == nil {
		return component.Spawn{}, fmt.Errorf("level: world or level is nil")
	}
	for i, b := range lvl.Blocks {
		col := colornames.Slategray
		if b.Color != "" {
			parsed, err := prefabs.ParseHexColor(b.Color)
			if err != nil {
				return component.Spawn{}, fmt.Errorf("level: block %d: %w", i, err)
			}
			col = color.RGBAModel.Convert(parsed).(color.RGBA)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.BlockComponent.Kind(), &component.Block{
			Min:   mgl64.Vec3(b.Min),
			Max:   mgl64.Vec3(b.Max),
			Color: col,
			Solid: b.IsSolid(),
		}); err != nil {
			return component.Spawn{}, fmt.Errorf("level: block %d: %w", i, err)
		}
	}
	return component.Spawn{X: lvl.Spawn.X, Y: lvl.Spawn.Y, Z: lvl.Spawn.Z, Yaw: lvl.Spawn.Yaw}, nil
}

// ClearLevel destroys every block entity.
func ClearLevel(w *ecs.World) int {
	var blocks []ecs.Entity
	ecs.ForEach(w, component.BlockComponent.Kind(), func(e ecs.Entity, _ *component.Block) {
		blocks = append(blocks, e)
	})
	for _, e := range blocks {
		ecs.DestroyEntity(w, e)
	}
	return len(blocks)
}
