package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/animbox/internal/engine/gpu"
	"github.com/Faultbox/animbox/internal/engine/gpu/gputest"
	"github.com/Faultbox/animbox/internal/logger"
)

const (
	vertexSrc   = "#version 330 core\nvoid main() { gl_Position = vec4(0.0); }\n"
	fragmentSrc = "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
	brokenSrc   = "#version 330 core\n#error broken\n"
)

func writeStages(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "model")
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestProgramTypeStages(t *testing.T) {
	tests := []struct {
		typ  ProgramType
		exts []string
	}{
		{Render, []string{".vert", ".frag"}},
		{Geometry, []string{".vert", ".geom", ".frag"}},
		{Compute, []string{".comp"}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			stages := tt.typ.Stages()
			if len(stages) != len(tt.exts) {
				t.Fatalf("got %d stages, want %d", len(stages), len(tt.exts))
			}
			for i, s := range stages {
				if Extension(s) != tt.exts[i] {
					t.Errorf("stage %d extension = %s, want %s", i, Extension(s), tt.exts[i])
				}
			}
		})
	}
}

func TestParseProgramType(t *testing.T) {
	for name, want := range map[string]ProgramType{"render": Render, "Geometry": Geometry, "compute": Compute, "": Render} {
		got, err := ParseProgramType(name)
		if err != nil || got != want {
			t.Errorf("ParseProgramType(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseProgramType("mesh"); err == nil {
		t.Error("expected error for unknown program type")
	}
}

func TestFromFilesRender(t *testing.T) {
	dev := gputest.New()
	base := writeStages(t, map[string]string{"model.vert": vertexSrc, "model.frag": fragmentSrc})

	p, err := FromFiles(dev, base, Render, Options{})
	if err != nil {
		t.Fatalf("FromFiles failed: %v", err)
	}

	if !p.Linked() || !dev.Linked(p.ID()) {
		t.Error("expected program to link")
	}

	counts := dev.Counts()
	if counts.ShadersCreated != 2 || counts.ShadersDeleted != 2 {
		t.Errorf("stages created/deleted = %d/%d, want 2/2", counts.ShadersCreated, counts.ShadersDeleted)
	}
	if dev.LiveShaders() != 0 {
		t.Errorf("%d stage objects outlived the build", dev.LiveShaders())
	}
	if dev.Attached(p.ID()) != 0 {
		t.Errorf("%d stages still attached after link", dev.Attached(p.ID()))
	}

	p.Close()
	p.Close()
	if dev.LivePrograms() != 0 || dev.Counts().ProgramsDeleted != 1 {
		t.Errorf("program not released exactly once: %+v", dev.Counts())
	}
	if errs := dev.Errors(); len(errs) != 0 {
		t.Errorf("unexpected device errors: %v", errs)
	}
}

func TestFromFilesGeometry(t *testing.T) {
	dev := gputest.New()
	base := writeStages(t, map[string]string{
		"model.vert": vertexSrc,
		"model.geom": "#version 330 core\nlayout(triangles) in;\nvoid main() {}\n",
		"model.frag": fragmentSrc,
	})

	p, err := FromFiles(dev, base, Geometry, Options{})
	if err != nil {
		t.Fatalf("FromFiles failed: %v", err)
	}
	defer p.Close()

	if dev.Counts().ShadersCreated != 3 {
		t.Errorf("expected 3 stages, got %d", dev.Counts().ShadersCreated)
	}
}

func TestFromFilesMissingFile(t *testing.T) {
	dev := gputest.New()
	base := writeStages(t, map[string]string{"model.vert": vertexSrc})

	_, err := FromFiles(dev, base, Render, Options{})
	if err == nil {
		t.Fatal("expected error for missing fragment shader")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	// Nothing touches the GPU before every source is read
	if c := dev.Counts(); c.ShadersCreated != 0 || c.ProgramsCreated != 0 {
		t.Errorf("GPU objects created before sources were read: %+v", c)
	}
}

func TestCompileFailureLogsAndContinues(t *testing.T) {
	logs := observeLogs(t)
	dev := gputest.New()
	base := writeStages(t, map[string]string{"model.vert": brokenSrc, "model.frag": fragmentSrc})

	p, err := FromFiles(dev, base, Render, Options{})
	if err != nil {
		t.Fatalf("expected log-and-continue, got error: %v", err)
	}
	defer p.Close()

	if p.Linked() {
		t.Error("program with a broken stage should not report linked")
	}
	if p.ID() == 0 {
		t.Error("expected a program id even when the build failed")
	}

	// Both stages were still compiled, attached and cleaned up
	if c := dev.Counts(); c.ShadersCreated != 2 || c.ShadersDeleted != 2 {
		t.Errorf("stages created/deleted = %d/%d, want 2/2", c.ShadersCreated, c.ShadersDeleted)
	}

	compile := logs.FilterMessage("shader compile failed").All()
	if len(compile) != 1 {
		t.Fatalf("expected 1 compile diagnostic, got %d", len(compile))
	}
	if compile[0].ContextMap()["stage"] != "vertex" {
		t.Errorf("diagnostic stage = %v, want vertex", compile[0].ContextMap()["stage"])
	}
	if compile[0].ContextMap()["log"] == "" {
		t.Error("diagnostic is missing the compiler log")
	}
	if logs.FilterMessage("shader link failed").Len() != 1 {
		t.Error("expected link failure to be logged")
	}
}

func TestCompileFailureFailFast(t *testing.T) {
	observeLogs(t)
	dev := gputest.New()
	base := writeStages(t, map[string]string{"model.vert": vertexSrc, "model.frag": brokenSrc})

	p, err := FromFiles(dev, base, Render, Options{FailFast: true})
	if err == nil {
		p.Close()
		t.Fatal("expected fail-fast error")
	}
	if !errors.Is(err, ErrBuild) {
		t.Errorf("expected ErrBuild, got %v", err)
	}

	if dev.LiveShaders() != 0 || dev.LivePrograms() != 0 {
		t.Errorf("fail-fast leaked objects: %d stages, %d programs", dev.LiveShaders(), dev.LivePrograms())
	}
}

func TestLinkFailure(t *testing.T) {
	logs := observeLogs(t)
	dev := gputest.New()
	dev.FailLink = "error: vertex output not consumed"

	p, err := Build(dev, "inline", []Source{
		{Stage: gpu.StageVertex, Name: "inline.vert", Text: vertexSrc},
		{Stage: gpu.StageFragment, Name: "inline.frag", Text: fragmentSrc},
	}, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	entries := logs.FilterMessage("shader link failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 link diagnostic, got %d", len(entries))
	}
	if entries[0].ContextMap()["log"] != dev.FailLink {
		t.Errorf("link log = %v", entries[0].ContextMap()["log"])
	}
	if entries[0].ContextMap()["program"] != "inline" {
		t.Errorf("program field = %v", entries[0].ContextMap()["program"])
	}
}

func TestUseAndUniform(t *testing.T) {
	dev := gputest.New()
	p, err := Build(dev, "inline", []Source{
		{Stage: gpu.StageVertex, Name: "inline.vert", Text: vertexSrc},
		{Stage: gpu.StageFragment, Name: "inline.frag", Text: fragmentSrc},
	}, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	stop := p.Use()
	if dev.CurrentProgram() != p.ID() {
		t.Errorf("current program = %d, want %d", dev.CurrentProgram(), p.ID())
	}
	stop()
	if dev.CurrentProgram() != 0 {
		t.Error("program still in use after stop")
	}

	if p.Uniform("ModelMtx") < 0 {
		t.Error("expected ModelMtx to be active")
	}
	if p.Uniform("Missing") != -1 {
		t.Error("expected -1 for an unknown uniform")
	}
}
