package plugin

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/lintstorm/internal/config"
	"github.com/dshills/lintstorm/internal/engine/document"
	"github.com/dshills/lintstorm/internal/engine/reconcile"
	"github.com/dshills/lintstorm/internal/lint/ruff"
	"github.com/dshills/lintstorm/internal/toolproc"
)

// Transformer rewrites source text. The ruff adapter implements it;
// tests substitute fakes.
type Transformer interface {
	Fix(ctx context.Context, cfg config.Config, src, filename string, unsafe bool) (string, error)
	Format(ctx context.Context, cfg config.Config, src, filename string) (string, error)
	Version(ctx context.Context) (string, error)
}

// Plugin binds the host editor, the transformer tool and the active
// configuration. It is safe for concurrent use; the config may be
// swapped while commands run.
type Plugin struct {
	host Host
	tool Transformer

	mu  sync.RWMutex
	cfg config.Config
}

// New creates a Plugin.
func New(host Host, tool Transformer, cfg config.Config) *Plugin {
	return &Plugin{host: host, tool: tool, cfg: cfg}
}

// Config returns the active configuration.
func (p *Plugin) Config() config.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// SetConfig replaces the active configuration. The config watcher
// calls this on live reload.
func (p *Plugin) SetConfig(cfg config.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}

// Fix applies safe fixes to the document.
func (p *Plugin) Fix(ctx context.Context, doc document.Document, filename string) error {
	return p.transform(ctx, doc, "fixes", func(src string) (string, error) {
		return p.tool.Fix(ctx, p.Config(), src, filename, false)
	})
}

// FixUnsafe applies both safe and unsafe fixes after confirmation.
// A declined prompt is not an error.
func (p *Plugin) FixUnsafe(ctx context.Context, doc document.Document, filename string) error {
	if !p.host.Confirm("Apply unsafe fixes? These may change program behavior.") {
		p.host.Status("fix canceled")
		return nil
	}
	return p.transform(ctx, doc, "fixes", func(src string) (string, error) {
		return p.tool.Fix(ctx, p.Config(), src, filename, true)
	})
}

// Format reformats the document.
func (p *Plugin) Format(ctx context.Context, doc document.Document, filename string) error {
	return p.transform(ctx, doc, "formatting", func(src string) (string, error) {
		return p.tool.Format(ctx, p.Config(), src, filename)
	})
}

// transform runs one rewrite operation and applies changed output to
// the document. On any failure the document is left untouched.
func (p *Plugin) transform(ctx context.Context, doc document.Document, what string, fn func(string) (string, error)) error {
	old := doc.Text()

	out, err := fn(old)
	switch {
	case errors.Is(err, ruff.ErrSyntaxError):
		p.host.Status("source has syntax errors; nothing applied")
		return err
	case errors.Is(err, toolproc.ErrTimeout):
		p.host.Status("tool timed out; nothing applied")
		return err
	case err != nil:
		p.host.Alert(fmt.Sprintf("tool failed: %v", err))
		return err
	}

	if out == old {
		p.host.Status("no " + what + " needed")
		return nil
	}

	reconcile.Apply(doc, old, out)
	p.host.Status("applied " + what)
	return nil
}

// EditConfig makes sure the config file exists and opens it for
// editing in the host.
func (p *Plugin) EditConfig() error {
	path := filepath.Join(p.host.SettingsDir(), config.FileName)
	if err := config.WriteDefault(path); err != nil {
		p.host.Alert(fmt.Sprintf("cannot create config: %v", err))
		return err
	}
	if !p.host.OpenFile(path) {
		return fmt.Errorf("cannot open %s", path)
	}
	return nil
}

// Help returns a short feature and configuration summary, probing the
// tool version. dir, when non-empty, is searched for project-level
// ruff configuration.
func (p *Plugin) Help(ctx context.Context, dir string) string {
	version := "not found"
	if v, err := p.tool.Version(ctx); err == nil {
		version = v
	}

	cfg := p.Config().Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, "ruff version: %s\n", version)
	fmt.Fprintf(&b, "config file: %s\n", filepath.Join(p.host.SettingsDir(), config.FileName))
	fmt.Fprintf(&b, "selected rules: %s\n", strings.Join(cfg.Select, ", "))
	if len(cfg.Ignore) > 0 {
		fmt.Fprintf(&b, "ignored rules: %s\n", strings.Join(cfg.Ignore, ", "))
	}
	fmt.Fprintf(&b, "timeout: %s\n", cfg.Timeout)

	if dir != "" {
		if proj, ok := config.FindProject(dir); ok {
			fmt.Fprintf(&b, "project config: %s\n", proj.Path)
			if proj.LineLength > 0 {
				fmt.Fprintf(&b, "project line length: %d\n", proj.LineLength)
			}
		}
	}

	b.WriteString("\ncommands: fix, fix-unsafe, format, edit-config\n")
	b.WriteString("rule categories: E/W pycodestyle, F pyflakes, B bugbear, I isort\n")
	return b.String()
}
