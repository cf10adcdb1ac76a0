// Package floorcast rasterizes the floor, road, and ceiling bands above
// and below the horizon, using the perspective row-stepping scheme of
// spec.md §4.C, grounded on the teacher's drawSimpleFloorCeiling and on
// original_source/src/lib.rs's draw_ceiling_floor_raycast for the
// row_distance and per-pixel step formulas.
package floorcast

import (
	"math"

	"raycore/internal/fixedpoint"
	"raycore/internal/gridmap"
	"raycore/internal/raygeom"
	"raycore/internal/shade"
	"raycore/internal/texstore"
	"raycore/internal/workpool"
)

// Options configures one floor/ceiling/road pass.
type Options struct {
	Aspect     float64
	LightRange float64
}

// Render rasterizes every row of frame (W*H*4 RGBA bytes) above and below
// the horizon, sampling floor, road, or ceiling textures per cell and
// skipping cells that have neither bit set. Rows are independent of one
// another (spec.md §5), so a non-nil pool runs them in parallel.
func Render(pool *workpool.Pool, frame []byte, screenW, screenH int, cam raygeom.Camera, grid *gridmap.Grid, textures *texstore.Store, opts Options) error {
	aspect := opts.Aspect
	if aspect == 0 {
		aspect = 1
	}
	horizon := float64(screenH)/2 + cam.Pitch

	floorTex, err := textures.Lookup(texstore.TypeFloor, 0)
	if err != nil {
		return err
	}
	roadTex, err := textures.Lookup(texstore.TypeRoad, 0)
	if err != nil {
		return err
	}
	ceilTex, err := textures.Lookup(texstore.TypeCeiling, 0)
	if err != nil {
		return err
	}

	rayDirX0 := cam.DirX - cam.PlaneX
	rayDirY0 := cam.DirY - cam.PlaneY
	rayDirX1 := cam.DirX + cam.PlaneX
	rayDirY1 := cam.DirY + cam.PlaneY

	skyCeilingAllowed := float64(screenH)/2-cam.Z >= 0

	renderRow := func(y int) {
		isFloorRow := float64(y) > horizon
		if !isFloorRow && !skyCeilingAllowed {
			return
		}

		p := math.Abs(float64(y) - horizon)
		if p == 0 {
			return
		}

		var camZ float64
		if isFloorRow {
			camZ = float64(screenH)/2 + cam.Z
		} else {
			camZ = float64(screenH)/2 - cam.Z
		}

		rowDistance := camZ / (p * 2 * aspect * cam.PlaneYInitial)

		floorStepX := rowDistance * (rayDirX1 - rayDirX0) / float64(screenW)
		floorStepY := rowDistance * (rayDirY1 - rayDirY0) / float64(screenW)

		worldX := fixedpoint.ToFixed(cam.X + rowDistance*rayDirX0)
		worldY := fixedpoint.ToFixed(cam.Y + rowDistance*rayDirY0)
		stepX := fixedpoint.ToFixed(floorStepX)
		stepY := fixedpoint.ToFixed(floorStepY)

		alpha := shade.AlphaFixed(rowDistance, opts.LightRange, false)

		for x := 0; x < screenW; x++ {
			mapX := int(worldX >> fixedpoint.Shift)
			mapY := int(worldY >> fixedpoint.Shift)
			cell := grid.At(mapX, mapY)

			var tex *texstore.Texture
			switch {
			case isFloorRow && cell.RoadPresent():
				tex = roadTex
			case isFloorRow && cellHasFloorBit(cell):
				tex = floorTex
			case !isFloorRow && cell.CeilingPresent():
				tex = ceilTex
			}

			if tex != nil {
				fracX := worldX & (fixedpoint.One - 1)
				fracY := worldY & (fixedpoint.One - 1)
				texX := int(fixedpoint.FixedMul(fixedpoint.Q20(tex.Width<<fixedpoint.Shift), fracX) >> fixedpoint.Shift)
				texY := int(fixedpoint.FixedMul(fixedpoint.Q20(tex.Height<<fixedpoint.Shift), fracY) >> fixedpoint.Shift)
				r, g, b, _ := tex.At(texX, texY)
				r = shadeByte(r, alpha)
				g = shadeByte(g, alpha)
				b = shadeByte(b, alpha)
				writeRGBA(frame, screenW, x, y, r, g, b, 255)
			}

			worldX += stepX
			worldY += stepY
		}
	}

	workpool.ParallelRows(pool, 0, screenH, renderRow)
	return nil
}

// cellHasFloorBit reports whether a cell has a rendered floor. spec.md §3
// lists a single "ceiling present" bit with no separate floor bit, and
// §8 scenario 1 (an all-zero map) has neither floor nor ceiling; bit 1 is
// therefore read as "this cell has a horizontal surface", floor below the
// horizon and ceiling above it, with road taking priority over floor.
func cellHasFloorBit(cell gridmap.Cell) bool {
	return cell.CeilingPresent()
}

func shadeByte(v byte, alphaFixed fixedpoint.Q20) byte {
	out := fixedpoint.FixedMul(fixedpoint.Q20(v)<<fixedpoint.Shift, alphaFixed) >> fixedpoint.Shift
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return byte(out)
}

func writeRGBA(frame []byte, frameWidth, x, y int, r, g, b, a byte) {
	i := (y*frameWidth + x) * 4
	frame[i] = r
	frame[i+1] = g
	frame[i+2] = b
	frame[i+3] = a
}
