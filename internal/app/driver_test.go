package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/animbox/internal/config"
	"github.com/Faultbox/animbox/internal/engine/camera"
	"github.com/Faultbox/animbox/internal/engine/gpu"
	"github.com/Faultbox/animbox/internal/engine/gpu/gputest"
	"github.com/Faultbox/animbox/internal/engine/input"
	"github.com/Faultbox/animbox/internal/engine/model"
	"github.com/Faultbox/animbox/internal/engine/scene"
	"github.com/Faultbox/animbox/internal/engine/shader"
)

func newTestScene(t *testing.T) (*scene.Scene, *scene.SpinningCube, *gputest.Device) {
	t.Helper()
	dev := gputest.New()
	p, err := shader.Build(dev, "test", []shader.Source{
		{Stage: gpu.StageVertex, Name: "test.vert", Text: "void main() {}"},
		{Stage: gpu.StageFragment, Name: "test.frag", Text: "void main() {}"},
	}, shader.Options{})
	if err != nil {
		t.Fatal(err)
	}

	s := scene.NewWithProgram(p, camera.DefaultParams(), camera.DefaultControllerConfig())
	cube := scene.NewSpinningCube(model.NewBox(dev, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 1)
	s.Add(cube)
	t.Cleanup(s.Close)
	return s, cube, dev
}

func TestDriverQuit(t *testing.T) {
	for _, e := range []input.Event{
		{Type: input.EventQuit},
		{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE},
	} {
		s, _, _ := newTestScene(t)
		d := NewDriver(s)
		d.HandleEvent(e)
		if d.Running() {
			t.Errorf("%+v did not stop the driver", e)
		}
	}
}

func TestDriverOrbit(t *testing.T) {
	s, _, _ := newTestScene(t)
	d := NewDriver(s)
	cam := s.Camera()

	d.HandleEvent(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT})
	d.HandleEvent(input.Event{Type: input.EventMouseMove, DeltaX: 30, DeltaY: 500})
	if cam.Azimuth() != 30 || cam.Incline() != -80 {
		t.Errorf("azimuth/incline = %v/%v, want 30/-80", cam.Azimuth(), cam.Incline())
	}
	d.HandleEvent(input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_LEFT})

	d.HandleEvent(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT})
	d.HandleEvent(input.Event{Type: input.EventFocusLost})
	d.HandleEvent(input.Event{Type: input.EventMouseMove, DeltaX: 50})
	if cam.Distance() != 10 {
		t.Errorf("distance changed after focus loss: %v", cam.Distance())
	}

	d.HandleEvent(input.Event{Type: input.EventMouseWheel, Wheel: 1})
	if !mgl32.FloatEqual(cam.Distance(), 9) {
		t.Errorf("distance = %v after wheel, want 9", cam.Distance())
	}
}

func TestDriverMotionBudget(t *testing.T) {
	s, _, _ := newTestScene(t)
	d := NewDriver(s)
	cam := s.Camera()

	d.HandleEvent(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT})
	d.HandleEvent(input.Event{Type: input.EventMouseMove, DeltaX: 80})
	d.HandleEvent(input.Event{Type: input.EventMouseMove, DeltaX: 80})
	if cam.Azimuth() != 100 {
		t.Errorf("azimuth = %v after 160 units in one frame, want 100", cam.Azimuth())
	}

	d.Frame(0)
	d.HandleEvent(input.Event{Type: input.EventMouseMove, DeltaX: 80})
	if cam.Azimuth() != 180 {
		t.Errorf("azimuth = %v after the next frame's motion, want 180", cam.Azimuth())
	}
}

func TestDriverReset(t *testing.T) {
	s, cube, _ := newTestScene(t)
	d := NewDriver(s)

	d.Frame(0.5)
	s.Camera().SetAzimuth(45)

	d.HandleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_R, Repeat: true})
	if cube.Angle() == 0 {
		t.Fatal("auto-repeat triggered a reset")
	}

	d.HandleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_R})
	if cube.Angle() != 0 || cube.World() != mgl32.Ident4() {
		t.Error("cube not reset")
	}
	if s.Camera().Azimuth() != 0 {
		t.Error("camera not reset")
	}
	if !d.Running() {
		t.Error("reset stopped the driver")
	}
}

func TestDriverResize(t *testing.T) {
	s, _, _ := newTestScene(t)
	d := NewDriver(s)

	var calls [][2]int
	d.OnResize = func(w, h int) { calls = append(calls, [2]int{w, h}) }

	d.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 1000, Height: 500})
	d.HandleEvent(input.Event{Type: input.EventWindowResize, Width: 1000, Height: 0})

	if len(calls) != 1 || calls[0] != [2]int{1000, 500} {
		t.Errorf("resize callbacks = %v", calls)
	}
	if s.Camera().Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", s.Camera().Aspect())
	}
}

func TestDriverScreenshot(t *testing.T) {
	s, _, _ := newTestScene(t)
	d := NewDriver(s)

	requested := 0
	d.OnScreenshot = func() { requested++ }
	d.HandleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12})
	d.HandleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12, Repeat: true})

	if requested != 1 {
		t.Errorf("screenshot requested %d times, want 1", requested)
	}
}

func TestDriverFrame(t *testing.T) {
	s, cube, dev := newTestScene(t)
	d := NewDriver(s)

	for i := 0; i < 4; i++ {
		d.Frame(0.25)
	}

	if !mgl32.FloatEqual(cube.Angle(), 1) {
		t.Errorf("angle = %v after 1s, want 1", cube.Angle())
	}
	draws := dev.Draws()
	if len(draws) != 4 {
		t.Fatalf("recorded %d draws, want 4", len(draws))
	}
	last := draws[3]
	want := s.Camera().ViewProj().Mul4(cube.World())
	if last.Uniforms[model.UniformModelViewProj] != [16]float32(want) {
		t.Error("last draw did not use the updated camera and cube matrices")
	}
}

func TestSceneConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Width, cfg.Graphics.Height = 1200, 600
	cfg.Shaders.Type = "geometry"
	cfg.Shaders.FailFast = true
	cfg.Scene.Cubes = append(cfg.Scene.Cubes, config.CubeConfig{
		Position: [3]float32{3, 0, 0},
		Axis:     [3]float32{1, 0, 0},
		SpinRate: 2,
	})

	sc, err := SceneConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if sc.Camera.Aspect != 2 || sc.Camera.FOV != 45 || sc.Camera.Incline != 20 {
		t.Errorf("camera params = %+v", sc.Camera)
	}
	if sc.Controller.MaxMouseDelta != 100 {
		t.Errorf("controller = %+v", sc.Controller)
	}
	if sc.ShaderType != shader.Geometry || !sc.ShaderOptions.FailFast {
		t.Errorf("shader settings = %v/%+v", sc.ShaderType, sc.ShaderOptions)
	}
	if len(sc.Cubes) != 2 || sc.Cubes[1].Position != (mgl32.Vec3{3, 0, 0}) || sc.Cubes[1].SpinRate != 2 {
		t.Errorf("cubes = %+v", sc.Cubes)
	}

	cfg.Scene.Cubes = nil
	sc, err = SceneConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Cubes) != 1 || sc.Cubes[0].Axis != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("empty cube list did not keep the default cube: %+v", sc.Cubes)
	}

	cfg.Shaders.Type = "mesh"
	if _, err := SceneConfig(cfg); err == nil {
		t.Error("expected error for unknown program type")
	}
}
