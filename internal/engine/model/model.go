package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/animbox/internal/engine/gpu"
	"github.com/Faultbox/animbox/internal/engine/shader"
)

var (
	// ErrIndexOutOfRange is returned when index data references a vertex
	// past the end of the vertex data.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotTriangles is returned when the index count is not a multiple of 3.
	ErrNotTriangles = errors.New("index count is not a triangle list")
)

// Model owns the GPU objects for one indexed triangle mesh.
type Model struct {
	dev          gpu.Device
	vertexBuffer *gpu.Buffer
	indexBuffer  *gpu.Buffer
	vao          *gpu.VertexArray
	count        int32
}

// New allocates a vertex buffer, an index buffer and a vertex array.
// Nothing is uploaded until SetBuffers or MakeBox.
func New(dev gpu.Device) *Model {
	return &Model{
		dev:          dev,
		vertexBuffer: gpu.NewVertexBuffer(dev),
		indexBuffer:  gpu.NewIndexBuffer(dev),
		vao:          gpu.NewVertexArray(dev),
	}
}

// NewBox allocates a model and uploads a box spanning boxMin..boxMax.
func NewBox(dev gpu.Device, boxMin, boxMax mgl32.Vec3) *Model {
	m := New(dev)
	m.MakeBox(boxMin, boxMax)
	return m
}

// MakeBox replaces the model's geometry with a flat-shaded box.
func (m *Model) MakeBox(boxMin, boxMax mgl32.Vec3) {
	vertices, indices := BoxGeometry(boxMin, boxMax)
	if err := m.SetBuffers(vertices, indices); err != nil {
		panic(fmt.Sprintf("model: invalid box geometry: %v", err))
	}
}

// SetBuffers uploads vertex and index data and records the attribute
// layout. Index data must be a triangle list referencing only existing
// vertices; invalid data is rejected before anything is uploaded.
func (m *Model) SetBuffers(vertices []Vertex, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangles, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexOutOfRange, idx, i, len(vertices))
		}
	}

	unbindVAO := m.vao.Bind()

	unbindVB := m.vertexBuffer.Bind()
	defer unbindVB()
	m.vertexBuffer.Upload(gpu.Bytes(vertices))

	// The index buffer binding is captured by the vertex array, so the
	// vertex array is released before the buffers are.
	unbindIB := m.indexBuffer.Bind()
	defer unbindIB()
	defer unbindVAO()
	m.indexBuffer.Upload(gpu.Bytes(indices))

	m.vao.SetLayout(
		gpu.Attrib{Location: 0, Components: 3, Type: gpu.AttribFloat, Stride: vertexStride, Offset: 0},
		gpu.Attrib{Location: 1, Components: 3, Type: gpu.AttribFloat, Stride: vertexStride, Offset: normalOffset},
	)

	m.count = int32(len(indices))
	return nil
}

// Count returns the number of indices drawn.
func (m *Model) Count() int32 {
	return m.count
}

// Draw renders the model with program. ModelMtx receives model and
// ModelViewProjMtx receives viewProj*model; shaders without those uniforms
// simply get no matrix.
func (m *Model) Draw(model, viewProj mgl32.Mat4, program *shader.Program) {
	stop := program.Use()
	defer stop()

	mvp := viewProj.Mul4(model)
	m.dev.UniformMatrix4(program.Uniform(UniformModel), (*[16]float32)(&model))
	m.dev.UniformMatrix4(program.Uniform(UniformModelViewProj), (*[16]float32)(&mvp))

	unbindIB := m.indexBuffer.Bind()
	defer unbindIB()
	unbindVAO := m.vao.Bind()
	defer unbindVAO()

	m.dev.DrawTriangles(m.count)
}

// Close releases the model's GPU objects.
func (m *Model) Close() {
	m.vao.Close()
	m.indexBuffer.Close()
	m.vertexBuffer.Close()
}
