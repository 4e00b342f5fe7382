package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/engine/camera"
	"github.com/Faultbox/animbox/internal/engine/input"
	"github.com/Faultbox/animbox/internal/engine/scene"
	"github.com/Faultbox/animbox/internal/logger"
)

// Driver applies input events to a scene and advances it frame by frame.
// It holds no window or context, so the frame protocol runs without one.
type Driver struct {
	scene   *scene.Scene
	running bool

	// OnResize is called with the new window size after the camera aspect
	// is updated.
	OnResize func(width, height int)
	// OnScreenshot is called when a capture is requested.
	OnScreenshot func()

	log *zap.Logger
}

// NewDriver creates a running driver for s.
func NewDriver(s *scene.Scene) *Driver {
	return &Driver{
		scene:   s,
		running: true,
		log:     logger.Named("app"),
	}
}

// Running reports whether a quit has not been requested.
func (d *Driver) Running() bool {
	return d.running
}

// Stop requests the loop to end after the current frame.
func (d *Driver) Stop() {
	d.running = false
}

// HandleEvent applies one input event.
func (d *Driver) HandleEvent(e input.Event) {
	ctrl := d.scene.Controller()

	switch e.Type {
	case input.EventQuit:
		d.Stop()

	case input.EventWindowResize:
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		d.scene.Resize(int32(e.Width), int32(e.Height))
		if d.OnResize != nil {
			d.OnResize(e.Width, e.Height)
		}

	case input.EventFocusLost:
		ctrl.Release()

	case input.EventKeyDown:
		if e.Repeat {
			return
		}
		switch e.Key {
		case sdl.SCANCODE_ESCAPE:
			d.log.Info("escape pressed, quitting")
			d.Stop()
		case sdl.SCANCODE_R:
			d.scene.Reset()
		case sdl.SCANCODE_F12:
			if d.OnScreenshot != nil {
				d.OnScreenshot()
			}
		}

	case input.EventMouseDown:
		if b, ok := mouseButton(e.Button); ok {
			ctrl.ButtonDown(b)
		}

	case input.EventMouseUp:
		if b, ok := mouseButton(e.Button); ok {
			ctrl.ButtonUp(b)
		}

	case input.EventMouseMove:
		ctrl.MouseMove(float32(e.DeltaX), float32(e.DeltaY))

	case input.EventMouseWheel:
		ctrl.Wheel(float32(e.Wheel))
	}
}

// Frame updates the camera and objects by dt seconds, then draws them.
// The caller clears the framebuffer before and presents after. Mouse motion
// handled before the next Frame counts against a fresh budget.
func (d *Driver) Frame(dt float32) {
	d.scene.Update(dt)
	d.scene.Draw()
	d.scene.Controller().NextFrame()
}

func mouseButton(b uint8) (camera.Button, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return camera.ButtonLeft, true
	case sdl.BUTTON_MIDDLE:
		return camera.ButtonMiddle, true
	case sdl.BUTTON_RIGHT:
		return camera.ButtonRight, true
	}
	return 0, false
}
