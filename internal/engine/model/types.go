// Package model provides drawable indexed triangle geometry.
package model

import "unsafe"

// Vertex is one model vertex. The layout is fixed: attribute location 0
// reads Position, location 1 reads Normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

const (
	vertexStride = int32(unsafe.Sizeof(Vertex{}))
	normalOffset = unsafe.Offsetof(Vertex{}.Normal)
)

// Uniform names every shader drawn with a Model must declare.
const (
	UniformModel         = "ModelMtx"
	UniformModelViewProj = "ModelViewProjMtx"
)
