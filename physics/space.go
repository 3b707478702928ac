// Package physics is the reference rigid-body backend: an index of colliders,
// the spatial queries characters sense with, and a fixed-step integrator.
package physics

import (
	"github.com/dhconnelly/rtreego"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/controller"
)

// minExtent keeps degenerate boxes indexable; rtreego rejects zero-length sides.
const minExtent = 1e-3

// collider is one indexed box.
type collider struct {
	entity ecs.Entity
	box    cube.BBox
	fixed  bool
	sensor bool
}

// Bounds implements rtreego.Spatial.
func (c *collider) Bounds() rtreego.Rect {
	return rectOf(c.box)
}

func rectOf(b cube.BBox) rtreego.Rect {
	lo, hi := b.Min(), b.Max()
	lengths := []float64{
		max(float64(hi[0]-lo[0]), minExtent),
		max(float64(hi[1]-lo[1]), minExtent),
		max(float64(hi[2]-lo[2]), minExtent),
	}
	r, err := rtreego.NewRect(rtreego.Point{float64(lo[0]), float64(lo[1]), float64(lo[2])}, lengths)
	if err != nil {
		// Unreachable: every length is clamped positive.
		panic(err)
	}
	return r
}

// Space indexes static colliders in an R-tree and keeps dynamic colliders in a
// flat list rebuilt every tick. Queries are read-only and safe to run
// concurrently once the tick's dynamic set is built.
type Space struct {
	static  *rtreego.Rtree
	statics int
	dynamic []collider
}

// NewSpace returns an empty space.
func NewSpace() *Space {
	return &Space{static: rtreego.NewTree(3, 25, 50)}
}

// AddStatic indexes a fixed collider. Static colliders are never moved or removed.
func (s *Space) AddStatic(e ecs.Entity, box cube.BBox, sensor bool) {
	s.static.Insert(&collider{entity: e, box: box, fixed: true, sensor: sensor})
	s.statics++
}

// StaticCount returns the number of indexed static colliders.
func (s *Space) StaticCount() int {
	return s.statics
}

// ResetDynamic forgets all dynamic colliders.
func (s *Space) ResetDynamic() {
	s.dynamic = s.dynamic[:0]
}

// AddDynamic registers a moving collider for this tick's queries.
func (s *Space) AddDynamic(e ecs.Entity, box cube.BBox, sensor bool) {
	s.dynamic = append(s.dynamic, collider{entity: e, box: box, sensor: sensor})
}

func accepts(c *collider, f controller.QueryFilter) bool {
	if c.entity == f.Exclude {
		return false
	}
	if f.FixedOnly && !c.fixed {
		return false
	}
	if f.ExcludeSensors && c.sensor {
		return false
	}
	return true
}

// visit calls fn for every collider whose box may intersect area.
func (s *Space) visit(area cube.BBox, f controller.QueryFilter, fn func(*collider)) {
	for _, sp := range s.static.SearchIntersect(rectOf(area)) {
		c := sp.(*collider)
		if accepts(c, f) {
			fn(c)
		}
	}
	if f.FixedOnly {
		return
	}
	for i := range s.dynamic {
		c := &s.dynamic[i]
		if accepts(c, f) && c.box.IntersectsWith(area) {
			fn(c)
		}
	}
}

// CastRay implements controller.Caster.
func (s *Space) CastRay(origin, dir mgl32.Vec3, maxDistance float32, f controller.QueryFilter) (controller.SensorOutput, bool) {
	return s.sweep(origin, mgl32.Vec3{}, dir, maxDistance, f)
}

// CastBox implements controller.Caster. The box is swept by casting a ray
// against every candidate grown by the box's half extents.
func (s *Space) CastBox(origin, halfExtents, dir mgl32.Vec3, maxDistance float32, f controller.QueryFilter) (controller.SensorOutput, bool) {
	return s.sweep(origin, halfExtents, dir, maxDistance, f)
}

func (s *Space) sweep(origin, half, dir mgl32.Vec3, maxDistance float32, f controller.QueryFilter) (controller.SensorOutput, bool) {
	if dir.Len() == 0 || maxDistance <= 0 {
		return controller.SensorOutput{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDistance))
	area := spanBox(origin, end, half)

	var out controller.SensorOutput
	found := false
	best := maxDistance
	s.visit(area, f, func(c *collider) {
		box := grow(c.box, half)
		if contains(box, origin) {
			// Starting inside counts as touching.
			out, found, best = controller.SensorOutput{Entity: c.entity}, true, 0
			return
		}
		res, ok := trace.BBoxIntercept(box, origin, end)
		if !ok {
			return
		}
		d := res.Position().Sub(origin).Len()
		if d <= best {
			out, found, best = controller.SensorOutput{Entity: c.entity, Distance: d}, true, d
		}
	})
	return out, found
}

// Overlap implements controller.Caster.
func (s *Space) Overlap(box cube.BBox, f controller.QueryFilter, dst []ecs.Entity) []ecs.Entity {
	s.visit(box, f, func(c *collider) {
		if c.box.IntersectsWith(box) {
			dst = append(dst, c.entity)
		}
	})
	return dst
}

// Statics appends the static, non-sensor boxes that intersect area to dst.
func (s *Space) Statics(area cube.BBox, dst []cube.BBox) []cube.BBox {
	for _, sp := range s.static.SearchIntersect(rectOf(area)) {
		c := sp.(*collider)
		if !c.sensor && c.box.IntersectsWith(area) {
			dst = append(dst, c.box)
		}
	}
	return dst
}

// spanBox returns the bounds of a segment swept by a box of the given half extents.
func spanBox(a, b, half mgl32.Vec3) cube.BBox {
	lo := mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}.Sub(half)
	hi := mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}.Add(half)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

func grow(b cube.BBox, half mgl32.Vec3) cube.BBox {
	if half == (mgl32.Vec3{}) {
		return b
	}
	lo, hi := b.Min().Sub(half), b.Max().Add(half)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

func contains(b cube.BBox, p mgl32.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p[0] > lo[0] && p[0] < hi[0] &&
		p[1] > lo[1] && p[1] < hi[1] &&
		p[2] > lo[2] && p[2] < hi[2]
}
