package camera

import "github.com/go-gl/mathgl/mgl32"

// Button identifies a mouse button driving the controller.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Incline limits enforced by the controller.
const (
	MinIncline = -90
	MaxIncline = 90
)

// ControllerConfig holds orbit control rates and limits.
type ControllerConfig struct {
	OrbitRate     float32 // degrees per mouse unit
	DollyRate     float32 // distance fraction per mouse unit
	WheelRate     float32 // distance fraction per wheel step
	MinDistance   float32
	MaxDistance   float32
	MaxMouseDelta float32 // per-frame clamp on summed mouse motion
}

// DefaultControllerConfig returns the default orbit rates.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		OrbitRate:     1.0,
		DollyRate:     0.005,
		WheelRate:     0.1,
		MinDistance:   0.01,
		MaxDistance:   1000,
		MaxMouseDelta: 100,
	}
}

// OrbitController turns mouse input into camera orbit parameters.
// Left drag orbits, right drag dollies, the wheel zooms.
type OrbitController struct {
	cam *Camera
	cfg ControllerConfig

	left, middle, right bool

	// Motion received and motion applied since the last NextFrame.
	frameRaw, frameUsed mgl32.Vec2
}

// NewOrbitController creates a controller driving cam.
func NewOrbitController(cam *Camera, cfg ControllerConfig) *OrbitController {
	return &OrbitController{cam: cam, cfg: cfg}
}

// ButtonDown records a pressed button.
func (o *OrbitController) ButtonDown(b Button) {
	o.setButton(b, true)
}

// ButtonUp records a released button.
func (o *OrbitController) ButtonUp(b Button) {
	o.setButton(b, false)
}

func (o *OrbitController) setButton(b Button, down bool) {
	switch b {
	case ButtonLeft:
		o.left = down
	case ButtonMiddle:
		o.middle = down
	case ButtonRight:
		o.right = down
	}
}

// Release drops every held button, e.g. when the window loses focus.
func (o *OrbitController) Release() {
	o.left, o.middle, o.right = false, false, false
}

// MouseMove applies relative mouse motion. The motion summed since the last
// NextFrame is clamped to ±MaxMouseDelta per axis, and only the part not yet
// applied this frame takes effect.
func (o *OrbitController) MouseMove(dx, dy float32) {
	o.frameRaw = o.frameRaw.Add(mgl32.Vec2{dx, dy})
	limit := o.cfg.MaxMouseDelta
	target := mgl32.Vec2{
		mgl32.Clamp(o.frameRaw[0], -limit, limit),
		mgl32.Clamp(o.frameRaw[1], -limit, limit),
	}
	dx, dy = target[0]-o.frameUsed[0], target[1]-o.frameUsed[1]
	o.frameUsed = target

	if o.left {
		o.cam.SetAzimuth(o.cam.Azimuth() + dx*o.cfg.OrbitRate)
		o.cam.SetIncline(mgl32.Clamp(o.cam.Incline()-dy*o.cfg.OrbitRate, MinIncline, MaxIncline))
	}
	if o.right {
		o.dolly(1 - dx*o.cfg.DollyRate)
	}
}

// NextFrame starts a new motion budget. Call it once per frame after the
// frame's events are handled.
func (o *OrbitController) NextFrame() {
	o.frameRaw = mgl32.Vec2{}
	o.frameUsed = mgl32.Vec2{}
}

// Wheel applies scroll-wheel steps; positive values move closer.
func (o *OrbitController) Wheel(delta float32) {
	o.dolly(1 - delta*o.cfg.WheelRate)
}

func (o *OrbitController) dolly(scale float32) {
	d := o.cam.Distance() * scale
	o.cam.SetDistance(mgl32.Clamp(d, o.cfg.MinDistance, o.cfg.MaxDistance))
}
