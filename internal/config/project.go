package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Project describes tool configuration found in the project tree.
// The external tool reads it on its own; the plugin only surfaces its
// presence, since plugin select/ignore take precedence anyway.
type Project struct {
	// Path is the config file that was found.
	Path string

	// LineLength is the configured line length, or 0 when unset.
	LineLength int
}

// FindProject walks up from dir looking for ruff.toml, .ruff.toml, or a
// pyproject.toml with a [tool.ruff] table. Returns false when nothing
// is found before the filesystem root.
func FindProject(dir string) (Project, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, false
	}

	for {
		for _, name := range []string{"ruff.toml", ".ruff.toml"} {
			path := filepath.Join(dir, name)
			if tree, ok := readTOML(path); ok {
				return Project{Path: path, LineLength: intKey(tree, "line-length")}, true
			}
		}

		path := filepath.Join(dir, "pyproject.toml")
		if tree, ok := readTOML(path); ok {
			if ruff, ok := toolTable(tree); ok {
				return Project{Path: path, LineLength: intKey(ruff, "line-length")}, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Project{}, false
		}
		dir = parent
	}
}

// readTOML parses a TOML file into a generic tree.
func readTOML(path string) (map[string]any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, false
	}
	return tree, true
}

// toolTable extracts the [tool.ruff] table from a pyproject tree.
func toolTable(tree map[string]any) (map[string]any, bool) {
	tool, ok := tree["tool"].(map[string]any)
	if !ok {
		return nil, false
	}
	ruff, ok := tool["ruff"].(map[string]any)
	return ruff, ok
}

// intKey reads an integer key from a TOML tree, tolerating the int64
// values the decoder produces.
func intKey(tree map[string]any, key string) int {
	switch v := tree[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
