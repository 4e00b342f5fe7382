// Package shader builds GPU programs from shader stage source files.
package shader

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/engine/gpu"
	"github.com/Faultbox/animbox/internal/logger"
)

// ErrBuild is returned in fail-fast mode when a stage fails to compile or
// the program fails to link.
var ErrBuild = errors.New("shader program build failed")

// ProgramType selects which stages make up a program.
type ProgramType int

const (
	// Render is vertex + fragment.
	Render ProgramType = iota
	// Geometry is vertex + geometry + fragment.
	Geometry
	// Compute is a single compute stage.
	Compute
)

// ParseProgramType maps a config name to a ProgramType.
func ParseProgramType(name string) (ProgramType, error) {
	switch strings.ToLower(name) {
	case "render", "":
		return Render, nil
	case "geometry":
		return Geometry, nil
	case "compute":
		return Compute, nil
	}
	return Render, fmt.Errorf("unknown program type %q", name)
}

func (t ProgramType) String() string {
	switch t {
	case Render:
		return "render"
	case Geometry:
		return "geometry"
	case Compute:
		return "compute"
	}
	return "unknown"
}

// Stages returns the stages of the program type in attach order.
func (t ProgramType) Stages() []gpu.ShaderStage {
	switch t {
	case Geometry:
		return []gpu.ShaderStage{gpu.StageVertex, gpu.StageGeometry, gpu.StageFragment}
	case Compute:
		return []gpu.ShaderStage{gpu.StageCompute}
	default:
		return []gpu.ShaderStage{gpu.StageVertex, gpu.StageFragment}
	}
}

// Extension returns the file extension a stage's source is read from.
func Extension(stage gpu.ShaderStage) string {
	switch stage {
	case gpu.StageVertex:
		return ".vert"
	case gpu.StageGeometry:
		return ".geom"
	case gpu.StageFragment:
		return ".frag"
	case gpu.StageCompute:
		return ".comp"
	}
	return ""
}

// Options tune how build failures are handled.
type Options struct {
	// FailFast releases everything and returns ErrBuild on any compile or
	// link failure. Without it failures are logged and the possibly
	// unusable program is returned.
	FailFast bool
}

// Source is one stage's source text and where it came from.
type Source struct {
	Stage gpu.ShaderStage
	Name  string
	Text  string
}

// Program owns a linked GPU program.
type Program struct {
	dev    gpu.Device
	id     uint32
	name   string
	linked bool
}

// FromFiles reads base+extension for every stage of typ, then compiles and
// links them. A missing or unreadable file is returned as an error before
// any GPU object is created.
func FromFiles(dev gpu.Device, base string, typ ProgramType, opts Options) (*Program, error) {
	stages := typ.Stages()
	sources := make([]Source, 0, len(stages))
	for _, stage := range stages {
		path := base + Extension(stage)
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s shader", stage)
		}
		sources = append(sources, Source{Stage: stage, Name: path, Text: string(text)})
	}
	return Build(dev, base, sources, opts)
}

// Build compiles each source, links them into one program and discards the
// stage objects. Stage and link diagnostics go to the "shader" logger.
func Build(dev gpu.Device, name string, sources []Source, opts Options) (*Program, error) {
	log := logger.Named("shader").With(zap.String("program", name))

	var diagnostics []string
	ids := make([]uint32, 0, len(sources))
	for _, src := range sources {
		id := dev.CreateShader(src.Stage)
		if id == 0 {
			log.Error("failed to create shader object", zap.Stringer("stage", src.Stage))
			diagnostics = append(diagnostics, fmt.Sprintf("%s: create failed", src.Name))
			continue
		}
		dev.ShaderSource(id, src.Text)
		dev.CompileShader(id)
		if ok, info := dev.ShaderCompiled(id); !ok {
			log.Error("shader compile failed",
				zap.Stringer("stage", src.Stage),
				zap.String("file", src.Name),
				zap.String("log", info),
			)
			diagnostics = append(diagnostics, fmt.Sprintf("%s: %s", src.Name, info))
		}
		ids = append(ids, id)
	}

	p := &Program{dev: dev, name: name, id: dev.CreateProgram()}
	for _, id := range ids {
		dev.AttachShader(p.id, id)
	}
	dev.LinkProgram(p.id)
	ok, info := dev.ProgramLinked(p.id)
	p.linked = ok
	if !ok {
		log.Error("shader link failed", zap.String("log", info))
		diagnostics = append(diagnostics, fmt.Sprintf("link: %s", info))
	}

	// Stages are only needed to produce the program
	for _, id := range ids {
		dev.DetachShader(p.id, id)
		dev.DeleteShader(id)
	}

	if len(diagnostics) > 0 && opts.FailFast {
		p.Close()
		return nil, errors.Wrap(ErrBuild, strings.Join(diagnostics, "; "))
	}

	log.Debug("shader program built", zap.Uint32("id", p.id), zap.Bool("linked", p.linked))
	return p, nil
}

// ID returns the program handle, or 0 once closed.
func (p *Program) ID() uint32 {
	return p.id
}

// Name returns the base name the program was built from.
func (p *Program) Name() string {
	return p.name
}

// Linked reports whether the program linked successfully.
func (p *Program) Linked() bool {
	return p.linked
}

// Use makes the program current and returns the func that deactivates it.
func (p *Program) Use() (stop func()) {
	p.dev.UseProgram(p.id)
	return func() { p.dev.UseProgram(0) }
}

// Uniform returns the uniform location for the given name, or -1 if the
// program has no such active uniform.
func (p *Program) Uniform(name string) int32 {
	return p.dev.UniformLocation(p.id, name)
}

// Close deletes the program. Calling Close again is a no-op.
func (p *Program) Close() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
