package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

// TraceHit is the nearest entry point of a segment into level geometry.
type TraceHit struct {
	Point  mgl64.Vec3
	T      float64
	Entity ecs.Entity
}

// firstBlockHit returns the nearest solid block the segment from start to end
// enters. Blocks containing start are ignored: the segment leaves them rather
// than hitting a face.
func firstBlockHit(w *ecs.World, start, end mgl64.Vec3) (TraceHit, bool) {
	if w == nil {
		return TraceHit{}, false
	}

	d := end.Sub(start)
	if d.Len() == 0 {
		return TraceHit{}, false
	}

	best := TraceHit{T: math.Inf(1)}
	hasHit := false

	ecs.ForEach(w, component.BlockComponent.Kind(), func(e ecs.Entity, b *component.Block) {
		if !b.Solid {
			return
		}
		hit, t := segmentAABBHit(start, d, b.Min, b.Max)
		if !hit || t <= 0 || t >= best.T {
			return
		}
		best = TraceHit{T: t, Entity: e}
		hasHit = true
	})

	if !hasHit {
		return TraceHit{}, false
	}
	best.Point = start.Add(d.Mul(best.T))
	return best, true
}

// segmentAABBHit is the slab test for start + d*t, t in [0, 1].
func segmentAABBHit(start, d, boxMin, boxMax mgl64.Vec3) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	for axis := 0; axis < 3; axis++ {
		if d[axis] != 0 {
			invD := 1.0 / d[axis]
			t1 := (boxMin[axis] - start[axis]) * invD
			t2 := (boxMax[axis] - start[axis]) * invD
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if start[axis] < boxMin[axis] || start[axis] > boxMax[axis] {
			return false, 0
		}
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
