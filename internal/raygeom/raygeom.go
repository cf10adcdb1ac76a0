// Package raygeom holds the float64 camera/vector math shared by every
// rendering stage: the camera pose, Euclidean distance, and ray-segment
// intersection used both by the wall raycaster's sub-cell geometry and by
// the sprite compositor's inverse camera transform. Fixed point stays out
// of this package by design — it is confined to fixedpoint's hot inner
// loops (see SPEC_FULL.md §9).
package raygeom

import "math"

// Camera is the 9-scalar camera pose described in spec.md §3. It is passed
// by value between render stages; stages must not mutate it.
type Camera struct {
	X, Y           float64 // world position
	DirX, DirY     float64 // unit view direction
	PlaneX, PlaneY float64 // camera plane vector, perpendicular to dir
	Pitch          float64 // vertical shear, in pixels
	Z              float64 // vertical eye offset, in pixels
	PlaneYInitial  float64 // focal-length correction constant
}

// MapCell returns the integer grid cell the camera currently occupies.
func (c Camera) MapCell() (int, int) {
	return int(math.Floor(c.X)), int(math.Floor(c.Y))
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Rotate spins dir and plane by angle radians around the origin, using a
// single Sincos call per spec.md §4.G. Positive angle turns the (dirX,dirY)
// pair counter-clockwise.
func Rotate(dirX, dirY, planeX, planeY, angle float64) (newDirX, newDirY, newPlaneX, newPlaneY float64) {
	sin, cos := math.Sincos(angle)
	newDirX = dirX*cos - dirY*sin
	newDirY = dirX*sin + dirY*cos
	newPlaneX = planeX*cos - planeY*sin
	newPlaneY = planeX*sin + planeY*cos
	return
}

// Segment is a finite line segment from (X1,Y1) to (X2,Y2), used for a wall
// slot's face or return edge.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// IntersectRay finds where the infinite ray from (ox,oy) in direction
// (dx,dy) crosses the finite segment seg. ok is false if the ray and
// segment are parallel, the crossing is behind the ray origin, or it falls
// outside the segment's extent. Robust to axis-aligned segments (the
// dominant case for grid-cell walls) because it solves the 2x2 linear
// system directly rather than dividing by either axis independently.
func IntersectRay(ox, oy, dx, dy float64, seg Segment) (x, y, t float64, ok bool) {
	sx := seg.X2 - seg.X1
	sy := seg.Y2 - seg.Y1

	denom := dx*sy - dy*sx
	if denom == 0 {
		return 0, 0, 0, false
	}

	// Solve: origin + t*dir = seg.P1 + u*segDir
	ex := seg.X1 - ox
	ey := seg.Y1 - oy

	t = (ex*sy - ey*sx) / denom
	u := (ex*dy - ey*dx) / denom

	if t < 0 || u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	return ox + t*dx, oy + t*dy, t, true
}
