package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/animbox/internal/engine/model"
	"github.com/Faultbox/animbox/internal/engine/shader"
)

// SpinningCube spins a model about an axis through its own center and
// places it at a fixed world position.
type SpinningCube struct {
	model    *model.Model
	position mgl32.Vec3
	axis     mgl32.Vec3
	spinRate float32 // radians per second

	angle float32
	world mgl32.Mat4
}

// NewSpinningCube takes ownership of m. A zero axis falls back to +Y.
func NewSpinningCube(m *model.Model, position, axis mgl32.Vec3, spinRate float32) *SpinningCube {
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return &SpinningCube{
		model:    m,
		position: position,
		axis:     axis.Normalize(),
		spinRate: spinRate,
		world:    mgl32.Ident4(),
	}
}

// Update advances the angle by spinRate*dt and rebuilds the world matrix:
// rotate about the origin, then translate to position.
func (c *SpinningCube) Update(dt float32) {
	c.angle += c.spinRate * dt
	c.world = mgl32.Translate3D(c.position.Elem()).
		Mul4(mgl32.HomogRotate3D(c.angle, c.axis))
}

// Draw renders the cube's model with the world matrix from the last Update.
func (c *SpinningCube) Draw(viewProj mgl32.Mat4, program *shader.Program) {
	c.model.Draw(c.world, viewProj, program)
}

// Reset zeroes the angle and restores an identity world matrix.
func (c *SpinningCube) Reset() {
	c.angle = 0
	c.world = mgl32.Ident4()
}

// Close releases the owned model.
func (c *SpinningCube) Close() {
	c.model.Close()
}

func (c *SpinningCube) Angle() float32       { return c.angle }
func (c *SpinningCube) World() mgl32.Mat4    { return c.world }
func (c *SpinningCube) Position() mgl32.Vec3 { return c.position }
func (c *SpinningCube) Axis() mgl32.Vec3     { return c.axis }
func (c *SpinningCube) SpinRate() float32    { return c.spinRate }
