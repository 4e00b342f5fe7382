package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/animbox/internal/engine/shader"
)

// Object is an animated, drawable scene member. Objects are created at
// scene setup and closed at teardown, never per frame.
type Object interface {
	// Update advances the object by dt seconds.
	Update(dt float32)
	// Draw issues the object's draw calls with the given program.
	Draw(viewProj mgl32.Mat4, program *shader.Program)
	// Reset returns the object to its initial animation state.
	Reset()
	// Close releases the object's GPU resources.
	Close()
}

var _ Object = (*SpinningCube)(nil)
