// Command raydemo is a minimal ebiten host that drives the rendering
// core: it loads a scene description, builds the texture store and map
// grid, and calls orchestrator.Render once per tick, blitting the
// resulting RGBA frame straight into an ebiten.Image. It owns no game
// state beyond camera pose and input — the raycasting, shading, and
// compositing all live in internal/, per spec.md §1's scope split.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raycore/internal/frametime"
	"raycore/internal/gridmap"
	"raycore/internal/orchestrator"
	"raycore/internal/probe"
	"raycore/internal/raycaster"
	"raycore/internal/raygeom"
	"raycore/internal/scene"
	"raycore/internal/sky"
	"raycore/internal/workpool"
)

type demoGame struct {
	cam     raygeom.Camera
	sc      *orchestrator.Scene
	frame   *orchestrator.Frame
	screen  *ebiten.Image
	pool    *workpool.Pool
	opts    orchestrator.Options
	monitor *frametime.Monitor

	moveSpeed float64
	rotSpeed  float64

	showHUD bool
}

func (g *demoGame) Update() error {
	rayOpts := raycaster.Options{
		LightRange:   g.opts.LightRange,
		StepRange:    g.opts.StepRange,
		StopAtWindow: true,
		Aspect:       g.opts.Aspect,
	}

	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.X, g.cam.Y = probe.Walk(g.cam, g.sc.Grid, g.moveSpeed, rayOpts)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.X, g.cam.Y = probe.Walk(g.cam, g.sc.Grid, -g.moveSpeed, rayOpts)
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.DirX, g.cam.DirY, g.cam.PlaneX, g.cam.PlaneY = raygeom.Rotate(g.cam.DirX, g.cam.DirY, g.cam.PlaneX, g.cam.PlaneY, -g.rotSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.DirX, g.cam.DirY, g.cam.PlaneX, g.cam.PlaneY = raygeom.Rotate(g.cam.DirX, g.cam.DirY, g.cam.PlaneX, g.cam.PlaneY, g.rotSpeed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showHUD = !g.showHUD
	}

	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	if _, err := orchestrator.Render(g.pool, g.cam, g.sc, g.frame, g.opts); err != nil {
		log.Fatalf("render: %v", err)
	}
	g.screen.WritePixels(g.frame.Pixels)
	screen.DrawImage(g.screen, nil)

	if g.showHUD {
		snap := g.monitor.Snapshot()
		ebiten.SetWindowTitle(hudTitle(snap))
	}
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frame.Width, g.frame.Height
}

func hudTitle(snap frametime.Snapshot) string {
	return "raydemo — " + snap.AvgFrameTime.String() + " avg frame"
}

func main() {
	scenePath := flag.String("scene", "cmd/raydemo/assets/scene.yaml", "path to scene YAML file")
	flag.Parse()

	cfg := MustLoadSceneConfig(*scenePath)

	var cells []uint64
	if cfg.Map.Path != "" {
		loaded, err := LoadMapFile(cfg.Map.Path, cfg.Map.Width)
		if err != nil {
			log.Fatalf("loading map: %v", err)
		}
		cells = loaded
	} else {
		cells = GenerateDemoMap(cfg.Map.Width)
	}
	grid := gridmap.NewGrid(cfg.Map.Width, cells)

	textures, err := BuildTextureStore(cfg.Textures)
	if err != nil {
		log.Fatalf("loading textures: %v", err)
	}

	skyTex, err := LoadSkyTexture(cfg.Textures.Sky)
	if err != nil {
		log.Fatalf("loading sky texture: %v", err)
	}
	skyWidth := roundSkyWidth(skyTex.Width, skyTex.Height, cfg.Display.ScreenHeight)
	skyStrip := sky.New(skyTex, skyWidth, cfg.Display.ScreenHeight)

	cam := raygeom.Camera{
		X: cfg.Camera.X, Y: cfg.Camera.Y,
		DirX: cfg.Camera.DirX, DirY: cfg.Camera.DirY,
		PlaneX: cfg.Camera.PlaneX, PlaneY: cfg.Camera.PlaneY,
		PlaneYInitial: cfg.Camera.PlaneYInitial,
		Z:             cfg.Camera.Z,
	}
	if cam.PlaneYInitial == 0 {
		cam.PlaneYInitial = 1
	}

	sc := &orchestrator.Scene{
		Grid:     grid,
		Textures: textures,
		Sky:      skyStrip,
		Sprites:  scene.CellSprites{},
	}

	frame := orchestrator.NewFrame(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	monitor := frametime.New()

	g := &demoGame{
		cam:       cam,
		sc:        sc,
		frame:     frame,
		screen:    ebiten.NewImage(frame.Width, frame.Height),
		pool:      workpool.Default(),
		monitor:   monitor,
		moveSpeed: cfg.Movement.MoveSpeed,
		rotSpeed:  cfg.Movement.RotationSpeed,
		opts: orchestrator.Options{
			Aspect:       cfg.Render.Aspect,
			LightRange:   cfg.Render.LightRange,
			StepRange:    cfg.Render.StepRange,
			StopAtWindow: cfg.Render.StopAtWindow,
			SpriteStride: cfg.Render.SpriteStride,
			Monitor:      monitor,
		},
	}
	if g.opts.Aspect == 0 {
		g.opts.Aspect = 1
	}
	if g.moveSpeed == 0 {
		g.moveSpeed = 0.06
	}
	if g.rotSpeed == 0 {
		g.rotSpeed = 0.04
	}

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*2, cfg.Display.ScreenHeight*2)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("raydemo: %v", err)
	}
}

// roundSkyWidth mirrors spec.md §4.E's sky_w formula: the source
// panorama's aspect ratio stretched across the render height, doubled
// for a full horizontal wrap.
func roundSkyWidth(texW, texH, screenHeight int) int {
	if texH == 0 {
		return screenHeight * 2
	}
	w := float64(texW) * float64(screenHeight) / float64(texH) * 2
	return int(w + 0.5)
}
