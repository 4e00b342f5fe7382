// Package config handles sandbox configuration loading and management.
package config

// Config holds all sandbox settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Camera      CameraConfig     `yaml:"camera"`
	Scene       SceneConfig      `yaml:"scene"`
	Shaders     ShaderConfig     `yaml:"shaders"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the orbit camera defaults and input rates.
// Angles are in degrees.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
	Azimuth  float32 `yaml:"azimuth"`
	Incline  float32 `yaml:"incline"`

	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
	OrbitRate     float32 `yaml:"orbit_rate"`      // degrees per mouse unit
	DollyRate     float32 `yaml:"dolly_rate"`      // distance fraction per mouse unit
	WheelRate     float32 `yaml:"wheel_rate"`      // distance fraction per wheel notch
	MaxMouseDelta float32 `yaml:"max_mouse_delta"` // per-event clamp on mouse deltas
}

// CubeConfig places one spinning cube.
type CubeConfig struct {
	Position [3]float32 `yaml:"position"`
	Axis     [3]float32 `yaml:"axis"`
	SpinRate float32    `yaml:"spin_rate"` // radians per second
}

// SceneConfig holds the scene layout.
type SceneConfig struct {
	BoxMin [3]float32   `yaml:"box_min"`
	BoxMax [3]float32   `yaml:"box_max"`
	Cubes  []CubeConfig `yaml:"cubes"`
}

// ShaderConfig selects the shader program used to draw the scene.
type ShaderConfig struct {
	Base string `yaml:"base"` // path without stage extension
	Type string `yaml:"type"` // render, geometry or compute
	// FailFast turns compile/link failures into startup errors instead of
	// logging them and running with the broken program.
	FailFast bool `yaml:"fail_fast"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png, bmp or tiff
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      900,
			Height:     700,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [3]float32{0.3, 0.3, 0.5},
		},
		Camera: CameraConfig{
			FOV:           45,
			Near:          0.1,
			Far:           100,
			Distance:      10,
			Azimuth:       0,
			Incline:       20,
			MinDistance:   0.01,
			MaxDistance:   1000,
			OrbitRate:     1.0,
			DollyRate:     0.005,
			WheelRate:     0.1,
			MaxMouseDelta: 100,
		},
		Scene: SceneConfig{
			BoxMin: [3]float32{-1, -1, -1},
			BoxMax: [3]float32{1, 1, 1},
			Cubes: []CubeConfig{
				{Position: [3]float32{0, 0, 0}, Axis: [3]float32{0, 1, 0}, SpinRate: 1},
			},
		},
		Shaders: ShaderConfig{
			Base:     "shaders/model",
			Type:     "render",
			FailFast: false,
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "animbox",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
