// Package gpu provides owned handles for GPU buffers and vertex arrays.
//
// Every call reaches the graphics API through a Device, so the same handles
// run against OpenGL (see package glcore) or against a recording fake in
// tests (see package gputest). All binding state lives on the context and is
// global; a Device must only be used from the goroutine that owns the context.
package gpu

// BufferTarget selects the binding point a buffer is attached to.
type BufferTarget int

const (
	// TargetArray holds vertex attribute data.
	TargetArray BufferTarget = iota
	// TargetElementArray holds index data.
	TargetElementArray
)

func (t BufferTarget) String() string {
	switch t {
	case TargetArray:
		return "array"
	case TargetElementArray:
		return "element_array"
	default:
		return "unknown"
	}
}

// ShaderStage identifies one compiled unit of a program.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageGeometry
	StageFragment
	StageCompute
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// AttribType is the component type of a vertex attribute.
type AttribType int

const (
	AttribFloat AttribType = iota
)

// Device is the subset of the graphics API the engine uses.
// Object ids are opaque; zero always means "no object".
type Device interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target BufferTarget, id uint32)
	// BufferData replaces the contents of the buffer bound to target.
	// Data is uploaded with a static-draw usage hint.
	BufferData(target BufferTarget, data []byte)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, components int32, typ AttribType, normalized bool, stride int32, offset uintptr)

	CreateShader(stage ShaderStage) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	// ShaderCompiled reports compile status and the compiler's info log.
	ShaderCompiled(id uint32) (bool, string)
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramLinked reports link status and the linker's info log.
	ProgramLinked(program uint32) (bool, string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 when the program has no such active uniform.
	UniformLocation(program uint32, name string) int32
	// UniformMatrix4 writes a column-major 4x4 matrix. Location -1 is a no-op.
	UniformMatrix4(location int32, m *[16]float32)

	// DrawTriangles issues an indexed triangle-list draw of count uint32
	// indices from the bound element array buffer.
	DrawTriangles(count int32)
}
