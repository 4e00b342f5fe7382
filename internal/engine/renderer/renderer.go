// Package renderer owns the global OpenGL state of the sandbox.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/engine/gpu/glcore"
	"github.com/Faultbox/animbox/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Renderer handles context-wide rendering state.
type Renderer struct {
	config Config
	device *glcore.Device
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	dev, err := glcore.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		device: dev,
	}

	logger.Info("OpenGL initialized",
		zap.String("version", dev.Version()),
		zap.String("renderer", dev.Renderer()),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	// Opaque replace
	gl.Disable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ZERO)

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Device returns the graphics device for the current context.
func (r *Renderer) Device() *glcore.Device {
	return r.device
}

// Close logs renderer shutdown. GPU objects are owned by their handles.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize sets the viewport to cover the framebuffer.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
