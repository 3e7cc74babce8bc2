package luadef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lintstorm/internal/lint"
)

// ErrBadDefinition is returned when a script registers a table that
// does not describe a valid tool.
var ErrBadDefinition = errors.New("invalid tool definition")

// Load executes a definition script and returns the tools it registers.
func Load(script string) ([]*lint.Tool, error) {
	return run(func(L *lua.LState) error {
		return L.DoString(script)
	})
}

// LoadFile executes the definition script at path.
func LoadFile(path string) ([]*lint.Tool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tools, err := Load(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return tools, nil
}

// LoadDir loads every .lua file in dir, in name order. A missing
// directory yields no tools and no error.
func LoadDir(dir string) ([]*lint.Tool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var tools []*lint.Tool
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tools = append(tools, loaded...)
	}
	return tools, nil
}

// run executes fn against a fresh sandboxed state and collects the
// tools registered during execution.
func run(fn func(*lua.LState) error) ([]*lint.Tool, error) {
	L := newState()
	defer L.Close()

	var tools []*lint.Tool
	register := L.NewFunction(func(L *lua.LState) int {
		tool, err := toolFromTable(L.CheckTable(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		tools = append(tools, tool)
		return 0
	})

	mod := L.NewTable()
	L.SetField(mod, "register", register)
	L.SetGlobal("lintstorm", mod)
	L.SetGlobal("register", register)

	if err := fn(L); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDefinition, err)
	}
	return tools, nil
}

// newState creates a Lua state with only safe libraries open.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Definition scripts have no business loading code from disk.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}

// toolFromTable builds and validates a tool from a register{} table.
func toolFromTable(t *lua.LTable) (*lint.Tool, error) {
	tool := &lint.Tool{
		Name:           stringField(t, "name"),
		Syntax:         stringField(t, "syntax"),
		Pattern:        stringField(t, "pattern"),
		TempfileSuffix: stringField(t, "tempfile_suffix"),
	}

	if tool.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadDefinition)
	}
	if tool.Syntax == "" {
		return nil, fmt.Errorf("%w: %s: syntax is required", ErrBadDefinition, tool.Name)
	}

	cmd, err := cmdField(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadDefinition, tool.Name, err)
	}
	tool.Cmd = cmd

	if secs, ok := t.RawGetString("timeout").(lua.LNumber); ok && secs > 0 {
		tool.Timeout = time.Duration(float64(secs) * float64(time.Second))
	}

	if _, err := tool.Validate(); err != nil {
		return nil, err
	}
	return tool, nil
}

// stringField returns a string entry of the table, or "".
func stringField(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// cmdField extracts the cmd array of strings.
func cmdField(t *lua.LTable) ([]string, error) {
	arr, ok := t.RawGetString("cmd").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("cmd must be an array of strings")
	}

	var cmd []string
	for i := 1; ; i++ {
		v := arr.RawGetInt(i)
		if v == lua.LNil {
			break
		}
		s, ok := v.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("cmd[%d] is not a string", i)
		}
		cmd = append(cmd, string(s))
	}
	if len(cmd) == 0 {
		return nil, fmt.Errorf("cmd must not be empty")
	}
	return cmd, nil
}
