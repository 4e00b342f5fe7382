// Package glcore implements gpu.Device on an OpenGL 3.3 core profile context.
package glcore

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/Faultbox/animbox/internal/engine/gpu"
)

// GL_COMPUTE_SHADER is only defined from 4.3 on; the stage is still
// requested by value so contexts that support it can compile it.
const computeShader = 0x91B9

var _ gpu.Device = (*Device)(nil)

// Device forwards every call to the current OpenGL context.
type Device struct{}

// New loads the OpenGL function pointers for the current context.
// A 3.3 core context must be current on the calling thread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return &Device{}, nil
}

// Version returns the GL_VERSION string of the context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Renderer returns the GL_RENDERER string of the context.
func (d *Device) Renderer() string {
	return gl.GoStr(gl.GetString(gl.RENDERER))
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.TargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func attribType(t gpu.AttribType) uint32 {
	switch t {
	case gpu.AttribFloat:
		return gl.FLOAT
	}
	return gl.FLOAT
}

func (d *Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *Device) BindBuffer(target gpu.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (d *Device) BufferData(target gpu.BufferTarget, data []byte) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(&data[0]), gl.STATIC_DRAW)
}

func (d *Device) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) VertexAttribPointer(index uint32, components int32, typ gpu.AttribType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, components, attribType(typ), normalized, stride, offset)
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	switch stage {
	case gpu.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case gpu.StageGeometry:
		return gl.CreateShader(gl.GEOMETRY_SHADER)
	case gpu.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	case gpu.StageCompute:
		return gl.CreateShader(computeShader)
	}
	return 0
}

func (d *Device) ShaderSource(id uint32, source string) {
	// The compiler expects a null-terminated string.
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
}

func (d *Device) CompileShader(id uint32) {
	gl.CompileShader(id)
}

func (d *Device) ShaderCompiled(id uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramLinked(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) DrawTriangles(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}
