package gpu

import "unsafe"

// Buffer owns one GPU buffer allocation bound to a fixed target.
// Use it by pointer only; the allocation is released exactly once by Close.
type Buffer struct {
	dev    Device
	target BufferTarget
	id     uint32
}

// NewBuffer allocates a buffer for the given target.
func NewBuffer(dev Device, target BufferTarget) *Buffer {
	return &Buffer{
		dev:    dev,
		target: target,
		id:     dev.GenBuffer(),
	}
}

// NewVertexBuffer allocates a buffer for vertex attribute data.
func NewVertexBuffer(dev Device) *Buffer {
	return NewBuffer(dev, TargetArray)
}

// NewIndexBuffer allocates a buffer for index data.
func NewIndexBuffer(dev Device) *Buffer {
	return NewBuffer(dev, TargetElementArray)
}

// ID returns the underlying object id, or 0 once closed.
func (b *Buffer) ID() uint32 {
	return b.id
}

// Target returns the binding point of the buffer.
func (b *Buffer) Target() BufferTarget {
	return b.target
}

// Bind makes the buffer current for its target and returns the func that
// clears that binding again.
func (b *Buffer) Bind() (unbind func()) {
	b.dev.BindBuffer(b.target, b.id)
	return b.Unbind
}

// Unbind clears the binding for the buffer's target.
func (b *Buffer) Unbind() {
	b.dev.BindBuffer(b.target, 0)
}

// Upload replaces the whole buffer contents with raw bytes.
// The buffer must be bound.
func (b *Buffer) Upload(data []byte) {
	b.dev.BufferData(b.target, data)
}

// Close releases the GPU allocation. Calling Close again is a no-op.
func (b *Buffer) Close() {
	if b.id == 0 {
		return
	}
	b.dev.DeleteBuffer(b.id)
	b.id = 0
}

// Bytes reinterprets a slice of plain values as its backing bytes without
// copying. T must not contain pointers.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
