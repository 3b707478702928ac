package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
)

// Arena layout
const (
	wallHeight   = 4
	wallThick    = 1
	gapStart     = 8 // Arena floor gap along x
	gapEnd       = 12
	probeHeight  = 50 // Spawn probes start this high
	spawnMargin  = 3
	spawnRetries = 32
)

// addStatic creates a fixed collider entity for box and indexes it.
func (g *Game) addStatic(box cube.BBox) {
	lo, hi := box.Min(), box.Max()
	t := components.NewTransform(lo.Add(hi).Mul(0.5))
	c := components.Collider{HalfExtents: hi.Sub(lo).Mul(0.5), Fixed: true}
	b := components.Body{Kind: components.KindStatic}
	e := g.staticMapper.NewEntity(&t, &c, &b)
	g.space.AddStatic(e, box, false)
}

// buildMap creates the static geometry for the configured map.
func (g *Game) buildMap() {
	switch g.mapName {
	case config.MapRogue:
		g.buildRogue()
	default:
		g.buildArena()
	}
	g.buildWalls()
}

// buildArena lays a flat floor with a gap and a staircase of platforms.
func (g *Game) buildArena() {
	h := float32(g.cfg.World.Size) / 2

	g.addStatic(cube.Box(-h, -1, -h, gapStart, 0, h))
	g.addStatic(cube.Box(gapEnd, -1, -h, h, 0, h))

	// Steps up to a raised deck
	for i := 0; i < 3; i++ {
		x := -10 - float32(i)*4
		top := float32(i+1) * 0.5
		g.addStatic(cube.Box(x-2, 0, -12, x+2, top, -8))
	}
	g.addStatic(cube.Box(-26, 0, -16, -20, 2, -4))
}

// buildRogue tiles the play area with columns whose heights follow simplex noise.
func (g *Game) buildRogue() {
	w := g.cfg.World
	noise := opensimplex.NewNormalized(g.seed)

	size := float32(w.Size)
	tile := float32(w.TileSize)
	n := int(size / tile)
	origin := -size / 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x0 := origin + float32(i)*tile
			z0 := origin + float32(j)*tile
			v := noise.Eval2(float64(i)*w.NoiseScale, float64(j)*w.NoiseScale)
			g.addStatic(cube.Box(x0, -1, z0, x0+tile, tileHeight(v, float32(w.HeightScale)), z0+tile))
		}
	}
}

// tileHeight quantizes normalized noise to half-unit steps.
func tileHeight(v float64, scale float32) float32 {
	return math32.Floor(float32(v)*scale*2) / 2
}

// buildWalls encloses the play area.
func (g *Game) buildWalls() {
	h := float32(g.cfg.World.Size) / 2
	t := float32(wallThick)
	g.addStatic(cube.Box(-h-t, -1, -h-t, h+t, wallHeight+4, -h))
	g.addStatic(cube.Box(-h-t, -1, h, h+t, wallHeight+4, h+t))
	g.addStatic(cube.Box(-h-t, -1, -h, -h, wallHeight+4, h))
	g.addStatic(cube.Box(h, -1, -h, h+t, wallHeight+4, h))
}

// groundAt returns the height of the walkable surface at (x, z).
func (g *Game) groundAt(x, z float32) (float32, bool) {
	origin := mgl32.Vec3{x, probeHeight, z}
	hit, ok := g.space.CastRay(origin, mgl32.Vec3{0, -1, 0}, probeHeight*2, controller.QueryFilter{FixedOnly: true})
	if !ok {
		return 0, false
	}
	return probeHeight - hit.Distance, true
}

// spawnPoint picks a random position above solid ground.
func (g *Game) spawnPoint() mgl32.Vec3 {
	h := float32(g.cfg.World.Size)/2 - spawnMargin
	lift := float32(g.cfg.Walk.FloatingHeight)
	for i := 0; i < spawnRetries; i++ {
		x := (g.rng.Float32()*2 - 1) * h
		z := (g.rng.Float32()*2 - 1) * h
		if y, ok := g.groundAt(x, z); ok && y < wallHeight {
			return mgl32.Vec3{x, y + lift, z}
		}
	}
	return mgl32.Vec3{0, lift, 0}
}
