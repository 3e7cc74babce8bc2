package luadef

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validScript = `
lintstorm.register{
    name    = "shellcheck",
    syntax  = "Bash",
    cmd     = {"shellcheck", "--format=gcc", "@"},
    pattern = "^.+?:(?P<line>\\d+):(?P<col>\\d+): (?P<message>.*)$",
}
`

func TestLoadRegistersTool(t *testing.T) {
	tools, err := Load(validScript)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}

	tool := tools[0]
	if tool.Name != "shellcheck" {
		t.Errorf("unexpected name: %s", tool.Name)
	}
	if tool.Syntax != "Bash" {
		t.Errorf("unexpected syntax: %s", tool.Syntax)
	}
	if len(tool.Cmd) != 3 || tool.Cmd[2] != "@" {
		t.Errorf("unexpected cmd: %v", tool.Cmd)
	}
}

func TestLoadMultipleTools(t *testing.T) {
	script := validScript + `
register{
    name    = "pylint",
    syntax  = "Python",
    cmd     = {"pylint", "@"},
    pattern = "^.+?:(?P<line>\\d+): (?P<message>.*)$",
    timeout = 45,
}
`
	tools, err := Load(script)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[1].Timeout != 45*time.Second {
		t.Errorf("timeout not converted: %v", tools[1].Timeout)
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	script := `register{syntax = "Bash", cmd = {"true"}, pattern = "(?P<line>\\d+)(?P<message>.*)"}`
	if _, err := Load(script); !errors.Is(err, ErrBadDefinition) {
		t.Errorf("expected ErrBadDefinition, got %v", err)
	}
}

func TestLoadRejectsBadPattern(t *testing.T) {
	script := `register{name = "x", syntax = "Y", cmd = {"true"}, pattern = "(?P<line"}`
	if _, err := Load(script); err == nil {
		t.Error("unbalanced pattern should fail")
	}
}

func TestLoadRejectsPatternWithoutGroups(t *testing.T) {
	script := `register{name = "x", syntax = "Y", cmd = {"true"}, pattern = "^error$"}`
	if _, err := Load(script); err == nil {
		t.Error("pattern without line and message groups should fail")
	}
}

func TestLoadRejectsNonArrayCmd(t *testing.T) {
	script := `register{name = "x", syntax = "Y", cmd = "true", pattern = "(?P<line>\\d+)(?P<message>.*)"}`
	if _, err := Load(script); !errors.Is(err, ErrBadDefinition) {
		t.Errorf("expected ErrBadDefinition, got %v", err)
	}
}

func TestLoadSyntaxErrorInScript(t *testing.T) {
	if _, err := Load(`register{`); !errors.Is(err, ErrBadDefinition) {
		t.Errorf("expected ErrBadDefinition, got %v", err)
	}
}

func TestLoadSandboxBlocksFileLoading(t *testing.T) {
	if _, err := Load(`dofile("/etc/passwd")`); err == nil {
		t.Error("dofile should not be available")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(validScript), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := `
register{
    name    = "pylint",
    syntax  = "Python",
    cmd     = {"pylint", "@"},
    pattern = "^.+?:(?P<line>\\d+): (?P<message>.*)$",
}
`
	if err := os.WriteFile(filepath.Join(dir, "b.lua"), []byte(second), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tools, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].Name != "shellcheck" || tools[1].Name != "pylint" {
		t.Errorf("unexpected order: %s, %s", tools[0].Name, tools[1].Name)
	}
}

func TestLoadDirMissing(t *testing.T) {
	tools, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(tools) != 0 {
		t.Errorf("expected no tools, got %d", len(tools))
	}
}
