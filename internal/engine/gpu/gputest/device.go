// Package gputest provides a recording gpu.Device for tests that run
// without a graphics context.
package gputest

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Faultbox/animbox/internal/engine/gpu"
)

// FailCompileMarker makes the fake compiler reject any source containing it.
const FailCompileMarker = "#error"

// DrawCall is one recorded indexed draw.
type DrawCall struct {
	Program       uint32
	VertexArray   uint32
	ElementBuffer uint32
	Count         int32
	Uniforms      map[string][16]float32
}

// Counts tallies object creation and release per kind.
type Counts struct {
	BuffersCreated      int
	BuffersDeleted      int
	VertexArraysCreated int
	VertexArraysDeleted int
	ShadersCreated      int
	ShadersDeleted      int
	ProgramsCreated     int
	ProgramsDeleted     int
}

type vertexArrayState struct {
	elementBuffer uint32
	sourceBuffer  uint32
	stride        int32
	attribs       []gpu.Attrib
}

type shaderState struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
	log      string
}

type programState struct {
	attached map[uint32]bool
	linked   bool
	log      string
	uniforms map[string][16]float32
}

// Device is a gpu.Device that validates usage and records every call.
// Ids are never reused, so a stale id is always detectable.
type Device struct {
	// ActiveUniforms lists the uniform names every linked program exposes.
	ActiveUniforms []string
	// FailLink forces every link to fail with this log when non-empty.
	FailLink string

	nextID uint32
	counts Counts

	buffers      map[uint32][]byte
	vertexArrays map[uint32]*vertexArrayState
	shaders      map[uint32]*shaderState
	programs     map[uint32]*programState

	boundArray uint32
	boundVAO   uint32
	defaultVAO vertexArrayState
	program    uint32

	draws  []DrawCall
	errors []string
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty fake device exposing the model uniforms.
func New() *Device {
	return &Device{
		ActiveUniforms: []string{"ModelMtx", "ModelViewProjMtx"},
		buffers:        make(map[uint32][]byte),
		vertexArrays:   make(map[uint32]*vertexArrayState),
		shaders:        make(map[uint32]*shaderState),
		programs:       make(map[uint32]*programState),
	}
}

func (d *Device) fail(format string, args ...any) {
	d.errors = append(d.errors, fmt.Sprintf(format, args...))
}

func (d *Device) alloc() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) vao() *vertexArrayState {
	if d.boundVAO == 0 {
		return &d.defaultVAO
	}
	return d.vertexArrays[d.boundVAO]
}

// Errors returns every misuse detected so far.
func (d *Device) Errors() []string {
	return d.errors
}

// Counts returns creation and release tallies.
func (d *Device) Counts() Counts {
	return d.counts
}

// Draws returns the recorded draw calls in issue order.
func (d *Device) Draws() []DrawCall {
	return d.draws
}

// LiveBuffers returns the number of allocated, unreleased buffers.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// LiveVertexArrays returns the number of unreleased vertex arrays.
func (d *Device) LiveVertexArrays() int { return len(d.vertexArrays) }

// LiveShaders returns the number of unreleased shader stage objects.
func (d *Device) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of unreleased programs.
func (d *Device) LivePrograms() int { return len(d.programs) }

// BoundBuffer returns the buffer currently bound to target.
func (d *Device) BoundBuffer(target gpu.BufferTarget) uint32 {
	if target == gpu.TargetElementArray {
		return d.vao().elementBuffer
	}
	return d.boundArray
}

// BoundVertexArray returns the current vertex array.
func (d *Device) BoundVertexArray() uint32 { return d.boundVAO }

// CurrentProgram returns the program in use.
func (d *Device) CurrentProgram() uint32 { return d.program }

// BufferContents returns a copy of the bytes uploaded to a buffer.
func (d *Device) BufferContents(id uint32) []byte {
	return append([]byte(nil), d.buffers[id]...)
}

// Attribs returns the attribute layout recorded in a vertex array.
func (d *Device) Attribs(vao uint32) []gpu.Attrib {
	if s, ok := d.vertexArrays[vao]; ok {
		return s.attribs
	}
	return nil
}

// ElementBufferOf returns the index buffer captured by a vertex array.
func (d *Device) ElementBufferOf(vao uint32) uint32 {
	if s, ok := d.vertexArrays[vao]; ok {
		return s.elementBuffer
	}
	return 0
}

// ShaderIDs returns the ids of live shader stage objects.
func (d *Device) ShaderIDs() []uint32 {
	ids := make([]uint32, 0, len(d.shaders))
	for id := range d.shaders {
		ids = append(ids, id)
	}
	return ids
}

// Attached reports the number of stages attached to a program.
func (d *Device) Attached(program uint32) int {
	if p, ok := d.programs[program]; ok {
		return len(p.attached)
	}
	return 0
}

// Linked reports whether a program linked successfully.
func (d *Device) Linked(program uint32) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

func (d *Device) GenBuffer() uint32 {
	id := d.alloc()
	d.buffers[id] = nil
	d.counts.BuffersCreated++
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	if _, ok := d.buffers[id]; !ok {
		d.fail("delete of unknown buffer %d", id)
		return
	}
	delete(d.buffers, id)
	d.counts.BuffersDeleted++
	if d.boundArray == id {
		d.boundArray = 0
	}
	if d.defaultVAO.elementBuffer == id {
		d.defaultVAO.elementBuffer = 0
	}
	for _, s := range d.vertexArrays {
		if s.elementBuffer == id {
			s.elementBuffer = 0
		}
	}
}

func (d *Device) BindBuffer(target gpu.BufferTarget, id uint32) {
	if _, ok := d.buffers[id]; id != 0 && !ok {
		d.fail("bind of unknown buffer %d to %s", id, target)
		return
	}
	if target == gpu.TargetElementArray {
		d.vao().elementBuffer = id
		return
	}
	d.boundArray = id
}

func (d *Device) BufferData(target gpu.BufferTarget, data []byte) {
	id := d.BoundBuffer(target)
	if id == 0 {
		d.fail("upload to %s with no buffer bound", target)
		return
	}
	d.buffers[id] = append([]byte(nil), data...)
}

func (d *Device) GenVertexArray() uint32 {
	id := d.alloc()
	d.vertexArrays[id] = &vertexArrayState{}
	d.counts.VertexArraysCreated++
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	if _, ok := d.vertexArrays[id]; !ok {
		d.fail("delete of unknown vertex array %d", id)
		return
	}
	delete(d.vertexArrays, id)
	d.counts.VertexArraysDeleted++
	if d.boundVAO == id {
		d.boundVAO = 0
	}
}

func (d *Device) BindVertexArray(id uint32) {
	if _, ok := d.vertexArrays[id]; id != 0 && !ok {
		d.fail("bind of unknown vertex array %d", id)
		return
	}
	d.boundVAO = id
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	if d.boundVAO == 0 {
		d.fail("enable attribute %d with no vertex array bound", index)
	}
}

func (d *Device) VertexAttribPointer(index uint32, components int32, typ gpu.AttribType, normalized bool, stride int32, offset uintptr) {
	if d.boundVAO == 0 {
		d.fail("attribute %d declared with no vertex array bound", index)
		return
	}
	if d.boundArray == 0 {
		d.fail("attribute %d declared with no array buffer bound", index)
		return
	}
	s := d.vao()
	s.sourceBuffer = d.boundArray
	s.stride = stride
	s.attribs = append(s.attribs, gpu.Attrib{
		Location:   index,
		Components: components,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	})
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	id := d.alloc()
	d.shaders[id] = &shaderState{stage: stage}
	d.counts.ShadersCreated++
	return id
}

func (d *Device) ShaderSource(id uint32, source string) {
	s, ok := d.shaders[id]
	if !ok {
		d.fail("source for unknown shader %d", id)
		return
	}
	s.source = source
}

func (d *Device) CompileShader(id uint32) {
	s, ok := d.shaders[id]
	if !ok {
		d.fail("compile of unknown shader %d", id)
		return
	}
	if s.source == "" || strings.Contains(s.source, FailCompileMarker) {
		s.compiled = false
		s.log = fmt.Sprintf("0:1(1): error: %s shader failed to compile", s.stage)
		return
	}
	s.compiled = true
	s.log = ""
}

func (d *Device) ShaderCompiled(id uint32) (bool, string) {
	s, ok := d.shaders[id]
	if !ok {
		d.fail("status of unknown shader %d", id)
		return false, ""
	}
	return s.compiled, s.log
}

func (d *Device) DeleteShader(id uint32) {
	if _, ok := d.shaders[id]; !ok {
		d.fail("delete of unknown shader %d", id)
		return
	}
	delete(d.shaders, id)
	d.counts.ShadersDeleted++
}

func (d *Device) CreateProgram() uint32 {
	id := d.alloc()
	d.programs[id] = &programState{
		attached: make(map[uint32]bool),
		uniforms: make(map[string][16]float32),
	}
	d.counts.ProgramsCreated++
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.fail("attach to unknown program %d", program)
		return
	}
	if _, ok := d.shaders[shader]; !ok {
		d.fail("attach of unknown shader %d", shader)
		return
	}
	p.attached[shader] = true
}

func (d *Device) DetachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.fail("detach from unknown program %d", program)
		return
	}
	if !p.attached[shader] {
		d.fail("detach of shader %d not attached to program %d", shader, program)
		return
	}
	delete(p.attached, shader)
}

func (d *Device) LinkProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.fail("link of unknown program %d", program)
		return
	}
	p.linked, p.log = true, ""
	if d.FailLink != "" {
		p.linked, p.log = false, d.FailLink
		return
	}
	if len(p.attached) == 0 {
		p.linked, p.log = false, "error: no shaders attached"
		return
	}
	for id := range p.attached {
		if !d.shaders[id].compiled {
			p.linked = false
			p.log = fmt.Sprintf("error: %s shader %d not compiled", d.shaders[id].stage, id)
			return
		}
	}
}

func (d *Device) ProgramLinked(program uint32) (bool, string) {
	p, ok := d.programs[program]
	if !ok {
		d.fail("status of unknown program %d", program)
		return false, ""
	}
	return p.linked, p.log
}

func (d *Device) DeleteProgram(program uint32) {
	if _, ok := d.programs[program]; !ok {
		d.fail("delete of unknown program %d", program)
		return
	}
	delete(d.programs, program)
	d.counts.ProgramsDeleted++
	if d.program == program {
		d.program = 0
	}
}

func (d *Device) UseProgram(program uint32) {
	if _, ok := d.programs[program]; program != 0 && !ok {
		d.fail("use of unknown program %d", program)
		return
	}
	d.program = program
}

// UniformLocation assigns locations by position in ActiveUniforms and
// returns -1 for unknown names or unlinked programs.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	for i, n := range d.ActiveUniforms {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	if location < 0 {
		return
	}
	p, ok := d.programs[d.program]
	if !ok {
		d.fail("uniform write with no program in use")
		return
	}
	if int(location) >= len(d.ActiveUniforms) {
		d.fail("uniform write to unknown location %d", location)
		return
	}
	p.uniforms[d.ActiveUniforms[location]] = *m
}

// Uniform returns the last matrix written to a program's uniform.
func (d *Device) Uniform(program uint32, name string) ([16]float32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return [16]float32{}, false
	}
	m, ok := p.uniforms[name]
	return m, ok
}

// DrawTriangles validates the draw against the bound vertex array, its
// index buffer and the vertex data the layout reads from.
func (d *Device) DrawTriangles(count int32) {
	if d.boundVAO == 0 {
		d.fail("draw with no vertex array bound")
		return
	}
	s := d.vao()
	if s.elementBuffer == 0 {
		d.fail("draw with no index buffer bound")
		return
	}
	if count%3 != 0 {
		d.fail("draw count %d is not a triangle list", count)
	}

	indices := d.buffers[s.elementBuffer]
	if int(count)*4 > len(indices) {
		d.fail("draw count %d exceeds %d uploaded indices", count, len(indices)/4)
		return
	}
	if s.stride > 0 {
		vertexCount := uint32(len(d.buffers[s.sourceBuffer]) / int(s.stride))
		for i := 0; i < int(count); i++ {
			if idx := binary.LittleEndian.Uint32(indices[i*4:]); idx >= vertexCount {
				d.fail("index %d at %d out of range for %d vertices", idx, i, vertexCount)
				break
			}
		}
	}

	call := DrawCall{
		Program:       d.program,
		VertexArray:   d.boundVAO,
		ElementBuffer: s.elementBuffer,
		Count:         count,
		Uniforms:      make(map[string][16]float32),
	}
	if p, ok := d.programs[d.program]; ok {
		for k, v := range p.uniforms {
			call.Uniforms[k] = v
		}
	}
	d.draws = append(d.draws, call)
}
