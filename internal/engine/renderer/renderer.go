// Package renderer owns frame-level OpenGL state: viewport, clear, depth test,
// framebuffer readback and error checks.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flythrough/internal/logger"
)

// SkyColor is the clear color behind the terrain.
var SkyColor = [4]float32{0.2, 0.3, 0.3, 1}

// Renderer tracks the viewport and clears and checks each frame.
type Renderer struct {
	width, height int
	log           *zap.Logger
}

// New loads GL function pointers and sets the fixed render state. The GL
// context must already be current.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("loading OpenGL functions: %w", err)
	}

	r := &Renderer{log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	// Both triangle windings are visible: the mesh is seen from above and below.
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], SkyColor[3])

	r.Resize(width, height)
	return r, CheckError("init render state")
}

// Resize sets the viewport to the framebuffer size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("viewport", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears color and depth for a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End reports any GL error raised during the frame.
func (r *Renderer) End() error {
	return CheckError("end frame")
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.width, r.height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

// CheckError returns the pending GL error, if any, tagged with the failing
// operation. Queued errors are drained so the next check starts clean.
func CheckError(op string) error {
	first := gl.GetError()
	if first == gl.NO_ERROR {
		return nil
	}
	for range 8 {
		if gl.GetError() == gl.NO_ERROR {
			break
		}
	}
	return fmt.Errorf("%s: GL error %s", op, errorName(first))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}
