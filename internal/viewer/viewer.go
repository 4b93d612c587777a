// Package viewer runs the terrain fly-through: it loads the heightmap, owns the
// window, renderer and camera, and drives the per-frame update/render loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flythrough/internal/config"
	"github.com/Faultbox/terrain-flythrough/internal/engine/camera"
	"github.com/Faultbox/terrain-flythrough/internal/engine/controls"
	"github.com/Faultbox/terrain-flythrough/internal/engine/debug"
	"github.com/Faultbox/terrain-flythrough/internal/engine/input"
	"github.com/Faultbox/terrain-flythrough/internal/engine/renderer"
	"github.com/Faultbox/terrain-flythrough/internal/engine/scene"
	"github.com/Faultbox/terrain-flythrough/internal/engine/terrain"
	"github.com/Faultbox/terrain-flythrough/internal/engine/window"
	"github.com/Faultbox/terrain-flythrough/internal/logger"
	"github.com/Faultbox/terrain-flythrough/pkg/math"
)

const windowTitle = "Terrain Flythrough"

// Viewer is a single interactive session.
type Viewer struct {
	config *config.Config
	log    *zap.Logger
	title  string

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	terrain     *scene.TerrainRenderer
	screenshots *debug.Screenshots

	heightmap  *terrain.Heightmap
	camera     *camera.FlyCamera
	controller *camera.Controller
}

// New loads the heightmap and builds every resource the loop needs.
// Any failure here is fatal: there is no partial terrain.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		log:    logger.Named("viewer"),
	}

	// Decode elevation data before touching the GPU so a bad file fails fast.
	start := time.Now()
	hm, err := terrain.LoadHeightmap(cfg.Terrain.Heightmap, cfg.Terrain.HeightDivisor)
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	v.heightmap = hm
	mesh := terrain.BuildMesh(hm)
	v.log.Info("terrain built",
		zap.String("heightmap", cfg.Terrain.Heightmap),
		zap.Int("width", hm.Width),
		zap.Int("depth", hm.Depth),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	// Create window (this also creates OpenGL context)
	v.title = fmt.Sprintf("%s - %s", windowTitle, filepath.Base(cfg.Terrain.Heightmap))
	v.window, err = window.New(window.Config{
		Title:      v.title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(width, height)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.terrain, err = scene.NewTerrainRenderer()
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create terrain renderer: %w", err)
	}
	if err := v.terrain.Upload(mesh); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload terrain: %w", err)
	}
	bounds := v.terrain.Bounds()
	v.log.Info("terrain uploaded",
		zap.Int("vertices", v.terrain.VertexCount()),
		zap.Float32s("min", bounds.Min[:]),
		zap.Float32s("max", bounds.Max[:]),
	)

	v.camera, err = newCamera(cfg.Camera, hm, width, height)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.controller = &camera.Controller{
		Speed:       cfg.Camera.Speed,
		Sensitivity: cfg.Camera.Sensitivity,
	}

	v.input = input.New(input.DefaultBindings())
	v.screenshots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "terrain")
	v.window.CaptureMouse(true)

	v.log.Info("viewer initialized",
		zap.Any("camera", v.camera.Position()),
	)
	return v, nil
}

// newCamera places the camera above the center of the grid.
func newCamera(cfg config.CameraConfig, hm *terrain.Heightmap, width, height int) (*camera.FlyCamera, error) {
	cx, cz := hm.Center()
	ground, err := hm.HeightAt(cx, cz)
	if err != nil {
		return nil, fmt.Errorf("placing camera: %w", err)
	}

	cam := camera.NewFlyCamera(camera.SpawnPosition(cx, cz, ground, cfg.EyeHeight), 1)
	cam.SetViewport(width, height)
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	return cam, nil
}

// Run drives update, render and present until quit. A render error ends the
// session and is returned.
func (v *Viewer) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for {
		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		frame := v.input.Poll()
		if frame.Quit {
			v.log.Info("quit requested")
			return nil
		}

		v.update(frame, dt)

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if frame.Pressed[controls.Screenshot] {
			v.screenshot()
		}

		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s (%d fps)", v.title, frameCount))
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
				zap.Any("position", v.camera.Position()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// update applies one input snapshot to the camera and viewport.
func (v *Viewer) update(frame controls.Frame, dt float32) {
	if frame.Resized {
		// Window events report logical size; the viewport needs pixels.
		width, height := v.window.DrawableSize()
		v.renderer.Resize(width, height)
		v.camera.SetViewport(width, height)
	}

	v.controller.Apply(v.camera, frame.Motion(), dt)
}

// render draws the current frame.
func (v *Viewer) render() error {
	v.renderer.Begin()

	v.terrain.Prepare()
	if err := v.terrain.Render(math.Identity(), v.camera.ViewMatrix(), v.camera.ProjectionMatrix()); err != nil {
		return err
	}

	return v.renderer.End()
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.screenshots.Save(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources, then the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.window != nil {
		v.window.CaptureMouse(false)
	}
	if v.terrain != nil {
		v.terrain.Close()
		v.terrain = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
