// Package scene holds the sprite records shared between the wall
// raycaster (which emits transient window sprites) and the sprite
// compositor (which consumes both window and static sprites). Keeping
// these types outside both packages avoids a raycaster<->spritecast
// import cycle, the arena-plus-index discipline SPEC_FULL.md's design
// notes call for in place of the source's cyclic sprite<->cell pointers.
package scene

// Seed is a host-supplied sprite record: the immutable part of a sprite
// instance, read from the per-cell sprite map and never mutated by the
// renderer (spec.md §3, §6).
type Seed struct {
	X, Y          float64
	AngleBias     float64
	HeightPercent float64
	Type          int
}

// CellKey identifies a grid cell in the per-cell sprite map.
type CellKey struct {
	X, Y int
}

// CellSprites maps a cell coordinate to the sprite seeds the host placed
// there. It is constructed once by the host and read-only during a frame.
type CellSprites map[CellKey][]Seed

// Instance is one sprite ready for compositing: a seed plus the runtime
// fields the raycaster or compositor computes fresh each frame. Runtime
// fields default to zero until filled in (spec.md §3).
type Instance struct {
	Seed
	Column   int
	Side     int
	Offset   float64
	Width    float64
	Fract    float64
	Distance float64
	IsWindow bool
}

// FromSeed returns a fresh Instance with only the seed fields populated.
func FromSeed(s Seed) Instance {
	return Instance{Seed: s}
}
