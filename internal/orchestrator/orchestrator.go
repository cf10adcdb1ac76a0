// Package orchestrator runs the fixed four-stage render pipeline of
// spec.md §5 — sky, floor/ceiling/road, walls, sprites — against one
// frame buffer, grounded on the teacher's Engine.Render for the
// per-frame stage ordering and on original_source/src/lib.rs's render
// loop for the two-pass (column-major DDA, then row-major raster)
// split. It wires together gridmap, texstore, sky, raycaster,
// floorcast, and spritecast behind a single entry point a host (such
// as cmd/raydemo) calls once per frame.
package orchestrator

import (
	"math"

	"raycore/internal/fixedpoint"
	"raycore/internal/floorcast"
	"raycore/internal/frametime"
	"raycore/internal/gridmap"
	"raycore/internal/mathutil"
	"raycore/internal/raycaster"
	"raycore/internal/raygeom"
	"raycore/internal/scene"
	"raycore/internal/sky"
	"raycore/internal/spritecast"
	"raycore/internal/texstore"
	"raycore/internal/workpool"
)

// sentinelDistance marks a column whose ray never hit a wall, so the
// sprite pass never trims a sprite against it.
const sentinelDistance = math.MaxFloat64

// Frame is a tightly packed RGBA byte buffer, Width*Height*4 bytes.
type Frame struct {
	Pixels        []byte
	Width, Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{Pixels: make([]byte, width*height*4), Width: width, Height: height}
}

// ZBuffer holds one perpendicular wall distance per screen column,
// populated by the wall pass and consumed by the sprite pass for
// occlusion trimming.
type ZBuffer []float64

// Options configures one Render call: the shared camera-projection
// constants plus per-pass tuning knobs.
type Options struct {
	Aspect       float64
	LightRange   float64
	StepRange    int
	StopAtWindow bool
	SpriteStride int

	// Monitor, if non-nil, records each stage's wall-clock time.
	Monitor *frametime.Monitor
}

// Scene bundles the static level data a Render call needs beyond the
// camera: the wall grid, the registered textures, the optional
// panoramic sky, and the host's per-cell static sprite placements.
type Scene struct {
	Grid     *gridmap.Grid
	Textures *texstore.Store
	Sky      *sky.Sky
	Sprites  scene.CellSprites
}

// Render draws one complete frame for cam against sc into frame,
// running the wall DDA pass across pool (nil runs every column
// inline). It returns the populated z-buffer so callers that want to
// reuse it (for example a debug overlay) don't have to recompute it.
func Render(pool *workpool.Pool, cam raygeom.Camera, sc *Scene, frame *Frame, opts Options) (ZBuffer, error) {
	aspect := opts.Aspect
	if aspect == 0 {
		aspect = 1
	}
	var stageErr error

	track(opts.Monitor, frametime.StageSky, func() {
		if sc.Sky != nil {
			yaw := skyYaw(cam)
			horizon := int(float64(frame.Height)/2 + cam.Pitch)
			sc.Sky.Render(pool, frame.Pixels, frame.Width, frame.Height, yaw, cam.Pitch, horizon)
		}
	})

	track(opts.Monitor, frametime.StageFloor, func() {
		floorOpts := floorcast.Options{Aspect: aspect, LightRange: opts.LightRange}
		stageErr = floorcast.Render(pool, frame.Pixels, frame.Width, frame.Height, cam, sc.Grid, sc.Textures, floorOpts)
	})
	if stageErr != nil {
		return nil, stageErr
	}

	rayOpts := raycaster.Options{
		LightRange:   opts.LightRange,
		StepRange:    opts.StepRange,
		StopAtWindow: opts.StopAtWindow,
		SpriteStride: opts.SpriteStride,
		Aspect:       aspect,
	}

	var columns []raycaster.Result
	zbuffer := make(ZBuffer, frame.Width)
	var windows []scene.Instance
	var staticSprites []scene.Instance

	track(opts.Monitor, frametime.StageWalls, func() {
		columns = workpool.ParallelColumns(pool, frame.Width, func(c int) raycaster.Result {
			return raycaster.CastColumn(cam, sc.Grid, frame.Width, frame.Height, c, rayOpts)
		})

		seenCells := make(map[scene.CellKey]bool)
		for _, res := range columns {
			col := res.Column
			if col.Hit {
				zbuffer[col.Col] = col.PerpDist
				if stageErr == nil {
					stageErr = drawWallColumn(frame, col, sc.Textures)
				}
			} else {
				zbuffer[col.Col] = sentinelDistance
			}
			windows = append(windows, res.Windows...)
			for _, key := range res.SampledCells {
				if seenCells[key] {
					continue
				}
				seenCells[key] = true
				for _, seed := range sc.Sprites[key] {
					staticSprites = append(staticSprites, scene.FromSeed(seed))
				}
			}
		}
	})
	if stageErr != nil {
		return nil, stageErr
	}

	track(opts.Monitor, frametime.StageSprites, func() {
		allSprites := append(staticSprites, windows...)
		spriteOpts := spritecast.Options{Aspect: aspect, LightRange: opts.LightRange}
		stageErr = spritecast.Composite(pool, frame.Pixels, frame.Width, frame.Height, zbuffer, cam, allSprites, sc.Textures, spriteOpts)
	})
	if stageErr != nil {
		return nil, stageErr
	}

	return zbuffer, nil
}

// track times fn as stage when m is non-nil, and just runs fn otherwise.
func track(m *frametime.Monitor, stage frametime.Stage, fn func()) {
	if m == nil {
		fn()
		return
	}
	m.Track(stage, fn)
}

func skyYaw(cam raygeom.Camera) float64 {
	return math.Atan2(cam.DirY, cam.DirX)
}

// drawWallColumn paints one vertical wall strip, clamped to the frame's
// visible rows (a DrawStartY/DrawEndY pair can extend off-screen for
// tall, nearby walls).
func drawWallColumn(frame *Frame, col raycaster.ColumnResult, textures *texstore.Store) error {
	tex, err := textures.Lookup(col.TextureType, 0)
	if err != nil {
		return err
	}

	startY := mathutil.IntMax(0, col.DrawStartY)
	endY := mathutil.IntMin(frame.Height, col.DrawEndY)
	if startY >= endY {
		return nil
	}

	texX := int(col.TexU * float64(tex.Width))
	height := col.DrawEndY - col.DrawStartY
	for y := startY; y < endY; y++ {
		var texY int
		if height > 0 {
			texY = (y - col.DrawStartY) * tex.Height / height
		}
		r, g, b, _ := tex.At(texX, texY)
		r = shadeByteQ20(r, col.AlphaFixed)
		g = shadeByteQ20(g, col.AlphaFixed)
		b = shadeByteQ20(b, col.AlphaFixed)
		writePixel(frame, col.Col, y, r, g, b, 255)
	}
	return nil
}

func shadeByteQ20(v byte, alphaFixed fixedpoint.Q20) byte {
	out := fixedpoint.FixedMul(fixedpoint.Q20(v)<<fixedpoint.Shift, alphaFixed) >> fixedpoint.Shift
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return byte(out)
}

func writePixel(frame *Frame, x, y int, r, g, b, a byte) {
	i := (y*frame.Width + x) * 4
	frame.Pixels[i] = r
	frame.Pixels[i+1] = g
	frame.Pixels[i+2] = b
	frame.Pixels[i+3] = a
}
