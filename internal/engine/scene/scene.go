// Package scene holds the sandbox's camera, program and animated objects
// and drives their per-frame update and draw.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/engine/camera"
	"github.com/Faultbox/animbox/internal/engine/gpu"
	"github.com/Faultbox/animbox/internal/engine/model"
	"github.com/Faultbox/animbox/internal/engine/shader"
	"github.com/Faultbox/animbox/internal/logger"
)

// CubeSpec places one spinning cube.
type CubeSpec struct {
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	SpinRate float32
}

// Config contains scene configuration options.
type Config struct {
	Camera     camera.Params
	Controller camera.ControllerConfig

	ShaderBase    string
	ShaderType    shader.ProgramType
	ShaderOptions shader.Options

	BoxMin mgl32.Vec3
	BoxMax mgl32.Vec3
	Cubes  []CubeSpec
}

// DefaultConfig returns a scene with one unit cube at the origin spinning
// about +Y at one radian per second.
func DefaultConfig() Config {
	return Config{
		Camera:     camera.DefaultParams(),
		Controller: camera.DefaultControllerConfig(),
		ShaderBase: "shaders/model",
		ShaderType: shader.Render,
		BoxMin:     mgl32.Vec3{-1, -1, -1},
		BoxMax:     mgl32.Vec3{1, 1, 1},
		Cubes: []CubeSpec{
			{Axis: mgl32.Vec3{0, 1, 0}, SpinRate: 1},
		},
	}
}

// Scene owns the camera, the shader program and every object.
type Scene struct {
	camera     *camera.Camera
	controller *camera.OrbitController
	program    *shader.Program
	objects    []Object

	log *zap.Logger
}

// New builds the program from files and creates one cube per entry.
func New(dev gpu.Device, cfg Config) (*Scene, error) {
	program, err := shader.FromFiles(dev, cfg.ShaderBase, cfg.ShaderType, cfg.ShaderOptions)
	if err != nil {
		return nil, fmt.Errorf("loading shader %s: %w", cfg.ShaderBase, err)
	}

	s := NewWithProgram(program, cfg.Camera, cfg.Controller)
	for _, cs := range cfg.Cubes {
		m := model.NewBox(dev, cfg.BoxMin, cfg.BoxMax)
		s.Add(NewSpinningCube(m, cs.Position, cs.Axis, cs.SpinRate))
	}

	s.log.Info("scene ready",
		zap.String("program", program.Name()),
		zap.Bool("linked", program.Linked()),
		zap.Int("objects", len(s.objects)))
	return s, nil
}

// NewWithProgram creates an empty scene that takes ownership of program.
func NewWithProgram(program *shader.Program, params camera.Params, ctrl camera.ControllerConfig) *Scene {
	cam := camera.New(params)
	return &Scene{
		camera:     cam,
		controller: camera.NewOrbitController(cam, ctrl),
		program:    program,
		log:        logger.Named("scene"),
	}
}

// Add appends an object; the scene closes it on teardown.
func (s *Scene) Add(obj Object) {
	s.objects = append(s.objects, obj)
}

func (s *Scene) Camera() *camera.Camera              { return s.camera }
func (s *Scene) Controller() *camera.OrbitController { return s.controller }
func (s *Scene) Program() *shader.Program            { return s.program }
func (s *Scene) Objects() []Object                   { return s.objects }

// Update recomputes the camera matrix and advances every object by dt.
func (s *Scene) Update(dt float32) {
	s.camera.Update()
	for _, obj := range s.objects {
		obj.Update(dt)
	}
}

// Draw draws every object with the camera's current view-projection.
func (s *Scene) Draw() {
	viewProj := s.camera.ViewProj()
	for _, obj := range s.objects {
		obj.Draw(viewProj, s.program)
	}
}

// Resize updates the camera aspect ratio. A zero height is ignored.
func (s *Scene) Resize(width, height int32) {
	if height <= 0 || width <= 0 {
		return
	}
	s.camera.SetAspect(float32(width) / float32(height))
}

// Reset restores the camera orbit and every object's animation state.
func (s *Scene) Reset() {
	s.camera.Reset()
	for _, obj := range s.objects {
		obj.Reset()
	}
	s.log.Debug("scene reset")
}

// Close releases every object, then the program.
func (s *Scene) Close() {
	for _, obj := range s.objects {
		obj.Close()
	}
	s.objects = nil
	if s.program != nil {
		s.program.Close()
	}
}
