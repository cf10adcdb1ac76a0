// Package probe implements the single-ray "walk" collision check of
// spec.md §4.F: it reuses the wall raycaster on the center screen column
// with a layered full-move/x-only/y-only/stay fallback, grounded on the
// teacher's CollisionSystem.CanMoveTo for the fallback-chain shape
// (though the teacher probes an AABB against multiple entities, where
// this probe casts a single ray against the grid).
package probe

import (
	"raycore/internal/gridmap"
	"raycore/internal/raycaster"
	"raycore/internal/raygeom"
)

const clearanceThreshold = 0.2

// Walk attempts to move the camera by d cells along its facing direction,
// falling back to an axis-only move and finally refusing to move at all
// when the full move would bring the camera within clearanceThreshold of
// a wall (doors are always walked through, per surface_kind==2).
func Walk(cam raygeom.Camera, grid *gridmap.Grid, d float64, opts raycaster.Options) (x, y float64) {
	opts.StopAtWindow = true

	probeDirX, probeDirY := cam.DirX, cam.DirY
	if d < 0 {
		probeDirX, probeDirY = -probeDirX, -probeDirY
	}

	if passes(castCenter(cam, probeDirX, probeDirY, grid, opts)) {
		return cam.X + cam.DirX*d, cam.Y + cam.DirY*d
	}
	if passes(castCenter(cam, probeDirX, 0, grid, opts)) {
		return cam.X + cam.DirX*d, cam.Y
	}
	if passes(castCenter(cam, 0, probeDirY, grid, opts)) {
		return cam.X, cam.Y + cam.DirY*d
	}
	return cam.X, cam.Y
}

func passes(res raycaster.ColumnResult) bool {
	return res.PerpDist > clearanceThreshold || res.SurfaceKind == raycaster.SurfaceDoor
}

// castCenter casts the screen-center column (camera_x=0, so the ray
// direction is exactly (dirX,dirY) with no plane contribution) and
// returns its column result.
func castCenter(cam raygeom.Camera, dirX, dirY float64, grid *gridmap.Grid, opts raycaster.Options) raycaster.ColumnResult {
	probeCam := cam
	probeCam.DirX, probeCam.DirY = dirX, dirY
	res := raycaster.CastColumn(probeCam, grid, 2, 2, 1, opts)
	return res.Column
}
