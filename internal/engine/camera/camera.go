// Package camera provides the orbit camera used to view the scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Params holds the construction parameters of a Camera.
// Angles are in degrees.
type Params struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	// Orbit state restored by Reset
	Distance float32
	Azimuth  float32 // yaw around world up
	Incline  float32 // pitch
}

// DefaultParams returns the sandbox's default camera.
func DefaultParams() Params {
	return Params{
		FOV:      45,
		Aspect:   1.33,
		Near:     0.1,
		Far:      100,
		Distance: 10,
		Azimuth:  0,
		Incline:  20,
	}
}

// Camera orbits the world origin at a distance, looking at it.
//
// Parameters are plain state; the view-projection matrix is only
// recomputed by Update.
type Camera struct {
	defaults Params

	fov, aspect, near, far float32

	distance float32
	azimuth  float32
	incline  float32

	viewProj mgl32.Mat4
}

// New creates a camera and computes its initial view-projection matrix.
func New(p Params) *Camera {
	c := &Camera{
		defaults: p,
		fov:      p.FOV,
		aspect:   p.Aspect,
		near:     p.Near,
		far:      p.Far,
	}
	c.Reset()
	return c
}

// Reset restores distance, azimuth and incline to their construction values.
// The aspect ratio is kept.
func (c *Camera) Reset() {
	c.distance = c.defaults.Distance
	c.azimuth = c.defaults.Azimuth
	c.incline = c.defaults.Incline
	c.Update()
}

// Aspect returns the width/height ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// SetAspect sets the width/height ratio, e.g. after a window resize.
func (c *Camera) SetAspect(aspect float32) { c.aspect = aspect }

// Distance returns the distance from the orbit pivot.
func (c *Camera) Distance() float32 { return c.distance }

// SetDistance sets the distance from the orbit pivot.
func (c *Camera) SetDistance(d float32) { c.distance = d }

// Azimuth returns the yaw in degrees.
func (c *Camera) Azimuth() float32 { return c.azimuth }

// SetAzimuth sets the yaw in degrees.
func (c *Camera) SetAzimuth(deg float32) { c.azimuth = deg }

// Incline returns the pitch in degrees.
func (c *Camera) Incline() float32 { return c.incline }

// SetIncline sets the pitch in degrees. The camera does not clamp it.
func (c *Camera) SetIncline(deg float32) { c.incline = deg }

// World returns the camera's world transform: start at +Z distance units
// from the pivot, pitch by -incline, then yaw by -azimuth.
func (c *Camera) World() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(-c.azimuth)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-c.incline))).
		Mul4(mgl32.Translate3D(0, 0, c.distance))
}

// View returns the inverse of World.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.distance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.incline))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.azimuth)))
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	return c.World().Col(3).Vec3()
}

// Update recomputes the view-projection matrix from the current parameters.
func (c *Camera) Update() {
	proj := mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.viewProj = proj.Mul4(c.View())
}

// ViewProj returns the matrix computed by the last Update.
func (c *Camera) ViewProj() mgl32.Mat4 {
	return c.viewProj
}
