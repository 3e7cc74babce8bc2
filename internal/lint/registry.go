package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the available tools keyed by syntax.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string][]*Tool
	names map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string][]*Tool),
		names: make(map[string]bool),
	}
}

// Register validates and adds a tool. Tool names must be unique.
func (r *Registry) Register(tool *Tool) error {
	if _, err := tool.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names[tool.Name] {
		return fmt.Errorf("%w: %s", ErrToolExists, tool.Name)
	}

	r.names[tool.Name] = true
	r.tools[tool.Syntax] = append(r.tools[tool.Syntax], tool)
	return nil
}

// ToolsFor returns the tools registered for a syntax.
func (r *Registry) ToolsFor(syntax string) ([]*Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := r.tools[syntax]
	if len(tools) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTool, syntax)
	}

	out := make([]*Tool, len(tools))
	copy(out, tools)
	return out, nil
}

// All returns every registered tool.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Tool
	for _, tools := range r.tools {
		out = append(out, tools...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
