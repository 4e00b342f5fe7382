package config

import (
	"fmt"

	"github.com/Faultbox/animbox/internal/engine/camera"
)

// Validate reports the first setting that would make the sandbox unusable.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera: fov %.1f must be in (0, 180)", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera: clip range [%g, %g] is empty", cam.Near, cam.Far)
	}
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera: distance range [%g, %g] is invalid", cam.MinDistance, cam.MaxDistance)
	}
	if cam.Distance < cam.MinDistance || cam.Distance > cam.MaxDistance {
		return fmt.Errorf("camera: distance %g outside [%g, %g]", cam.Distance, cam.MinDistance, cam.MaxDistance)
	}
	if cam.Incline < camera.MinIncline || cam.Incline > camera.MaxIncline {
		return fmt.Errorf("camera: incline %g outside [%d, %d]", cam.Incline, camera.MinIncline, camera.MaxIncline)
	}
	if cam.MaxMouseDelta <= 0 {
		return fmt.Errorf("camera: max_mouse_delta must be positive")
	}

	for i := 0; i < 3; i++ {
		if c.Scene.BoxMin[i] >= c.Scene.BoxMax[i] {
			return fmt.Errorf("scene: box_min %v must be below box_max %v on every axis", c.Scene.BoxMin, c.Scene.BoxMax)
		}
	}
	for i, cube := range c.Scene.Cubes {
		if cube.Axis == [3]float32{} {
			return fmt.Errorf("scene: cube %d has a zero rotation axis", i)
		}
	}

	switch c.Shaders.Type {
	case "render", "geometry", "compute":
	default:
		return fmt.Errorf("shaders: unknown program type %q", c.Shaders.Type)
	}
	if c.Shaders.Base == "" {
		return fmt.Errorf("shaders: base path is empty")
	}

	switch c.Screenshots.Format {
	case "", "png", "bmp", "tiff":
	default:
		return fmt.Errorf("screenshots: unknown format %q", c.Screenshots.Format)
	}
	return nil
}
