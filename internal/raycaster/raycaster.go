// Package raycaster implements the per-column DDA wall traversal of
// spec.md §4.B: grid stepping, sub-cell wall-slot intersection, door and
// window discovery, perpendicular distance, texture-u, and shading,
// grounded on the teacher's performMultiHitRaycastWithDirection and on
// original_source/src/lib.rs's draw_walls_raycast for the perpendicular
// distance and texture-mirroring formulas.
package raycaster

import (
	"math"

	"raycore/internal/fixedpoint"
	"raycore/internal/gridmap"
	"raycore/internal/raygeom"
	"raycore/internal/scene"
	"raycore/internal/shade"
	"raycore/internal/texstore"
)

// SurfaceKind identifies what a column's ray struck.
type SurfaceKind int

const (
	SurfaceNone SurfaceKind = iota
	SurfaceWall
	SurfaceDoor
	SurfaceWindow
)

// Options configures a cast: the light falloff range, the maximum DDA
// step count, whether windows are opaque, and the column stride at which
// cells are sampled for static sprite lookup.
type Options struct {
	LightRange   float64
	StepRange    int
	StopAtWindow bool
	SpriteStride int
	Aspect       float64
}

// ColumnResult is one column's col_data tuple (spec.md §4.B).
type ColumnResult struct {
	Col          int
	Hit          bool
	TexU         float64 // texel u in [0,1]
	DrawStartY   int
	DrawEndY     int
	WallHeight   float64
	AlphaFixed   fixedpoint.Q20
	SurfaceKind  SurfaceKind
	PerpDist     float64
	Side         int
	MapX, MapY   int
	TextureType  string
}

// Result bundles one column's wall hit plus the window sprites it
// discovered along the way and the cells it sampled for static sprites.
type Result struct {
	Column       ColumnResult
	Windows      []scene.Instance
	SampledCells []scene.CellKey
}

const sentinelDistance = math.MaxFloat64

// CastColumn traces a single screen column c against the grid.
func CastColumn(cam raygeom.Camera, grid *gridmap.Grid, screenW, screenH, c int, opts Options) Result {
	cameraX := 2*float64(c)/float64(screenW) - 1
	rayDirX := cam.DirX + cam.PlaneX*cameraX
	rayDirY := cam.DirY + cam.PlaneY*cameraX

	mapX, mapY := cam.MapCell()

	deltaDistX := math.Abs(1 / rayDirX)
	deltaDistY := math.Abs(1 / rayDirY)

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDirX < 0 {
		stepX = -1
		sideDistX = (cam.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX+1) - cam.X) * deltaDistX
	}
	if rayDirY < 0 {
		stepY = -1
		sideDistY = (cam.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY+1) - cam.Y) * deltaDistY
	}

	res := Result{Column: ColumnResult{Col: c, Hit: false, PerpDist: sentinelDistance}}
	sampleSprites := opts.SpriteStride > 0 && c%opts.SpriteStride == 0

	side := 0
	for i := 0; i < opts.StepRange; i++ {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = 0
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = 1
		}

		if sampleSprites {
			res.SampledCells = append(res.SampledCells, scene.CellKey{X: mapX, Y: mapY})
		}

		cell := grid.At(mapX, mapY)

		if cell.IsThickWall() {
			perp := perpDistForSide(sideDistX, sideDistY, deltaDistX, deltaDistY, side)
			wallHit := wallHitCoordinate(cam, perp, rayDirX, rayDirY, side)
			texU := fracMirrored(wallHit, mirrorThick(side, rayDirX, rayDirY))
			finishHit(&res.Column, cam, screenW, screenH, opts, perp, texU, side, mapX, mapY, SurfaceWall, texstore.TypeWall)
			return res
		}

		n := cell.WallCount()
		if n > 0 {
			if hitSlot(cam, grid, mapX, mapY, rayDirX, rayDirY, cell, n, side, screenW, screenH, opts, &res) {
				return res
			}
		}
	}

	return res
}

// hitSlot evaluates every enabled wall slot in the current cell, picking
// the closest valid intersection across all slots' face and return
// segments. It returns true if the column's ray terminated in this cell
// (a wall, door, or stop_at_window window); a non-stopping window is
// appended to res.Windows and the DDA loop continues.
func hitSlot(cam raygeom.Camera, grid *gridmap.Grid, mapX, mapY int, rayDirX, rayDirY float64, cell gridmap.Cell, n, side int, screenW, screenH int, opts Options, res *Result) bool {
	type candidate struct {
		t          float64
		onFace     bool
		slot       gridmap.WallSlot
		vertical   bool
		alongLocal float64
	}
	var best *candidate

	consider := func(x1, y1, x2, y2 float64, onFace bool, slot gridmap.WallSlot) {
		seg := raygeom.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
		x, y, t, ok := raygeom.IntersectRay(cam.X, cam.Y, rayDirX, rayDirY, seg)
		if !ok {
			return
		}
		vertical := x1 == x2
		var alongLocal float64
		if vertical {
			alongLocal = y - math.Floor(y)
		} else {
			alongLocal = x - math.Floor(x)
		}
		if best == nil || t < best.t {
			best = &candidate{t: t, onFace: onFace, slot: slot, vertical: vertical, alongLocal: alongLocal}
		}
	}

	for i := 0; i < n; i++ {
		slot := cell.Slot(i)
		if !slot.Enabled {
			continue
		}
		fx1, fy1, fx2, fy2 := slot.FaceSegment(mapX, mapY)
		consider(fx1, fy1, fx2, fy2, true, slot)
		rx1, ry1, rx2, ry2 := slot.ReturnSegment(mapX, mapY)
		consider(rx1, ry1, rx2, ry2, false, slot)
	}

	if best == nil {
		return false
	}

	texU := (best.alongLocal - best.slot.OffsetSecondary) / best.slot.Depth
	mirror := mirrorSegment(best.vertical, rayDirX, rayDirY)
	texU = fracMirrored(texU, mirror) // wraps a return-cap value outside [0,1) to its fractional part, then flips when mirrored
	texU = clamp01(texU)

	if best.onFace && best.slot.Door {
		finishHit(&res.Column, cam, screenW, screenH, opts, best.t, texU, side, mapX, mapY, SurfaceDoor, texstore.TypeDoor)
		return true
	}

	if best.onFace && best.slot.Window {
		if opts.StopAtWindow {
			finishHit(&res.Column, cam, screenW, screenH, opts, best.t, texU, side, mapX, mapY, SurfaceWindow, texstore.TypeWindow)
			return true
		}
		res.Windows = append(res.Windows, scene.Instance{
			Seed:     scene.Seed{X: cam.X + best.t*rayDirX, Y: cam.Y + best.t*rayDirY, Type: 0, HeightPercent: 100},
			Column:   res.Column.Col,
			Side:     side,
			Offset:   best.slot.Offset,
			Width:    best.slot.Depth,
			Fract:    texU,
			Distance: best.t * cam.PlaneYInitial,
			IsWindow: true,
		})
		return false
	}

	finishHit(&res.Column, cam, screenW, screenH, opts, best.t, texU, side, mapX, mapY, SurfaceWall, texstore.TypeWall)
	return true
}

func finishHit(out *ColumnResult, cam raygeom.Camera, screenW, screenH int, opts Options, rawDist, texU float64, side, mapX, mapY int, kind SurfaceKind, textureType string) {
	perp := rawDist * cam.PlaneYInitial

	lineHeight := float64(screenW) / 2 / perp
	aspect := opts.Aspect
	if aspect == 0 {
		aspect = 1
	}
	mid := float64(screenH)/2 + cam.Pitch + cam.Z/(perp*2*aspect)

	alphaFixed := shade.AlphaFixed(perp, opts.LightRange, side == 1)

	*out = ColumnResult{
		Col:         out.Col,
		Hit:         true,
		TexU:        texU,
		DrawStartY:  int(math.Round(mid - lineHeight/2)),
		DrawEndY:    int(math.Round(mid + lineHeight/2)),
		WallHeight:  lineHeight,
		AlphaFixed:  alphaFixed,
		SurfaceKind: kind,
		PerpDist:    perp,
		Side:        side,
		MapX:        mapX,
		MapY:        mapY,
		TextureType: textureType,
	}
}

func perpDistForSide(sideDistX, sideDistY, deltaDistX, deltaDistY float64, side int) float64 {
	if side == 0 {
		return sideDistX - deltaDistX
	}
	return sideDistY - deltaDistY
}

func wallHitCoordinate(cam raygeom.Camera, perp, rayDirX, rayDirY float64, side int) float64 {
	if side == 0 {
		return cam.Y + perp*rayDirY
	}
	return cam.X + perp*rayDirX
}

func mirrorThick(side int, rayDirX, rayDirY float64) bool {
	if side == 0 {
		return rayDirX > 0
	}
	return rayDirY < 0
}

func mirrorSegment(vertical bool, rayDirX, rayDirY float64) bool {
	if vertical {
		return rayDirX > 0
	}
	return rayDirY < 0
}

func fracMirrored(v float64, mirror bool) float64 {
	f := v - math.Floor(v)
	if mirror {
		f = 1 - f
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
