package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Block is an axis-aligned box of level geometry. Solid blocks collide in the
// view plane and stop the depth probe; the rest are scenery.
type Block struct {
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Color color.RGBA
	Solid bool
}

// Center returns the midpoint of the box.
func (b Block) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

var BlockComponent = NewComponent[Block]()
