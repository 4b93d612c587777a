// Package window owns the SDL2 window, its OpenGL 4.1 core context and the
// mouse capture used for free-look.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flythrough/internal/logger"
)

func init() {
	// GL and SDL video calls are only valid on the thread that made the context.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is the viewer's single SDL window and GL context.
type Window struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// Context attributes must be set before the window exists. 4.1 core is the
// newest profile macOS offers.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// New opens the window and makes its GL context current.
func New(cfg Config) (*Window, error) {
	w := &Window{log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("SDL_GL_SetAttribute(%d): %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := w.setSwapInterval(cfg.VSync)

	width, height := w.DrawableSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("drawable_width", width),
		zap.Int("drawable_height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("swap_interval", interval),
	)
	return w, nil
}

// setSwapInterval prefers adaptive vsync, falls back to plain vsync, and
// returns the interval in effect.
func (w *Window) setSwapInterval(vsync bool) int {
	if !vsync {
		_ = sdl.GLSetSwapInterval(0)
		return 0
	}
	if sdl.GLSetSwapInterval(-1) == nil {
		return -1
	}
	if err := sdl.GLSetSwapInterval(1); err != nil {
		w.log.Warn("vsync unavailable", zap.Error(err))
		return 0
	}
	return 1
}

// Close releases the context and window and shuts SDL down. Safe to call
// more than once.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.log.Info("closing window")
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}
	sdl.Quit()
}

func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which is larger than
// the window size on HiDPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// CaptureMouse switches relative mouse mode on or off. While captured the
// cursor is hidden and cannot leave the window.
func (w *Window) CaptureMouse(capture bool) {
	sdl.SetRelativeMouseMode(capture)
	toggle := sdl.ENABLE
	if capture {
		toggle = sdl.DISABLE
	}
	_, _ = sdl.ShowCursor(toggle)
}

func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
