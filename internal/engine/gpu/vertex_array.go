package gpu

// Attrib declares one vertex attribute fed from the bound array buffer.
type Attrib struct {
	Location   uint32
	Components int32
	Type       AttribType
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// VertexArray owns a vertex array object. It is created once per model and
// never shared.
type VertexArray struct {
	dev Device
	id  uint32
}

// NewVertexArray allocates a vertex array object.
func NewVertexArray(dev Device) *VertexArray {
	return &VertexArray{
		dev: dev,
		id:  dev.GenVertexArray(),
	}
}

// ID returns the underlying object id, or 0 once closed.
func (v *VertexArray) ID() uint32 {
	return v.id
}

// Bind makes the vertex array current and returns the func that unbinds it.
func (v *VertexArray) Bind() (unbind func()) {
	v.dev.BindVertexArray(v.id)
	return v.Unbind
}

// Unbind clears the current vertex array.
func (v *VertexArray) Unbind() {
	v.dev.BindVertexArray(0)
}

// SetLayout records the attribute layout into the vertex array state.
// Both the vertex array and the source array buffer must be bound; the
// layout persists across later binds.
func (v *VertexArray) SetLayout(attribs ...Attrib) {
	for _, a := range attribs {
		v.dev.EnableVertexAttribArray(a.Location)
		v.dev.VertexAttribPointer(a.Location, a.Components, a.Type, a.Normalized, a.Stride, a.Offset)
	}
}

// Close releases the vertex array. Calling Close again is a no-op.
func (v *VertexArray) Close() {
	if v.id == 0 {
		return
	}
	v.dev.DeleteVertexArray(v.id)
	v.id = 0
}
