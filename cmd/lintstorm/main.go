// Package main is the entry point for the lintstorm command.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/lintstorm/internal/config"
	"github.com/dshills/lintstorm/internal/engine/document"
	"github.com/dshills/lintstorm/internal/lint"
	"github.com/dshills/lintstorm/internal/lint/ruff"
	"github.com/dshills/lintstorm/internal/plugin"
	"github.com/dshills/lintstorm/internal/plugin/luadef"
	"github.com/dshills/lintstorm/internal/toolproc"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitFound = 1
	exitError = 2
)

type options struct {
	configPath string
	timeout    time.Duration
	verb       string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(0)
	log.SetPrefix("lintstorm: ")

	opts := parseFlags()

	host := newCLIHost()
	cfgPath := configPath(host, opts)
	cfg := opts.override(config.Load(cfgPath))

	exe, err := ruff.Find("")
	if err != nil {
		if opts.verb == "help" {
			// Help still works without the tool; the probe reports the miss.
			exe = "ruff"
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}
	}

	procs := toolproc.NewRunner()
	r := ruff.New(exe, procs)
	p := plugin.New(host, r, cfg)
	ctx := context.Background()

	// Pick up config edits made while commands run against long file
	// lists; tool invocations read the config per call.
	if w, err := config.NewWatcher(cfgPath, func(cfg config.Config) {
		p.SetConfig(opts.override(cfg))
	}); err == nil {
		defer w.Close()
	} else {
		log.Printf("config watch: %v", err)
	}

	switch opts.verb {
	case "check":
		return runCheck(ctx, host, r, procs, cfg, opts.files)
	case "fix":
		return runTransform(ctx, opts.files, p.Fix)
	case "fix-unsafe":
		return runTransform(ctx, opts.files, p.FixUnsafe)
	case "format":
		return runTransform(ctx, opts.files, p.Format)
	case "edit-config":
		if err := p.EditConfig(); err != nil {
			return exitError
		}
		return exitOK
	case "help":
		dir := ""
		if len(opts.files) > 0 {
			dir = filepath.Dir(opts.files[0])
		} else if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
		fmt.Print(p.Help(ctx, dir))
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", opts.verb)
		flag.Usage()
		return exitError
	}
}

// runCheck lints each file and prints its diagnostics.
func runCheck(ctx context.Context, host *cliHost, r *ruff.Ruff, procs *toolproc.Runner, cfg config.Config, files []string) int {
	reg := lint.NewRegistry()
	if err := reg.Register(r.Tool(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	loadCustomTools(reg, host.SettingsDir())

	runner := lint.NewRunner(procs)
	runner.OnSummary = func(tool, line string) {
		log.Printf("%s: %s", tool, line)
	}

	found := false
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}

		tools, err := toolsFor(reg, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
			return exitError
		}

		for _, tool := range tools {
			diags, err := runner.Check(ctx, tool, string(src), file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
				return exitError
			}
			for _, d := range diags {
				found = true
				fmt.Printf("%s:%d:%d: %s\n", file, d.Line, d.Col, d.Display())
			}
		}
	}

	if found {
		return exitFound
	}
	return exitOK
}

// runTransform applies a rewrite command to each file and writes the
// result back.
func runTransform(ctx context.Context, files []string, fn func(context.Context, document.Document, string) error) int {
	code := exitOK
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}

		doc := document.NewMemDocument(string(src))
		if err := fn(ctx, doc, file); err != nil {
			code = exitError
			continue
		}

		if doc.Calls().Total() == 0 {
			continue
		}
		if err := os.WriteFile(file, []byte(doc.Text()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Printf("%s: updated\n", file)
	}
	return code
}

// loadCustomTools registers Lua-defined tools from the settings dir.
func loadCustomTools(reg *lint.Registry, settingsDir string) {
	tools, err := luadef.LoadDir(filepath.Join(settingsDir, "tools"))
	if err != nil {
		log.Printf("custom tools: %v", err)
		return
	}
	for _, tool := range tools {
		if err := reg.Register(tool); err != nil {
			log.Printf("custom tool %s: %v", tool.Name, err)
		}
	}
}

// toolsFor picks the tools for a file by extension. Python files map
// to the Python syntax; other extensions match tool tempfile suffixes.
func toolsFor(reg *lint.Registry, file string) ([]*lint.Tool, error) {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if ext == "py" {
		return reg.ToolsFor("Python")
	}
	for _, tool := range reg.All() {
		if tool.TempfileSuffix == ext {
			return reg.ToolsFor(tool.Syntax)
		}
	}
	return nil, fmt.Errorf("no tool for .%s files", ext)
}

// configPath resolves the config file location: explicit flag, else
// the settings directory.
func configPath(host *cliHost, opts options) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	return filepath.Join(host.SettingsDir(), config.FileName)
}

// override applies flag overrides on top of a loaded config.
func (o options) override(cfg config.Config) config.Config {
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	return cfg.Normalize()
}

func parseFlags() options {
	var opts options
	var timeoutSecs float64
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.Float64Var(&timeoutSecs, "timeout", 0, "Tool timeout in seconds (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lintstorm - lint, fix and format through external tools\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lintstorm [options] <command> [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  check       Report diagnostics\n")
		fmt.Fprintf(os.Stderr, "  fix         Apply safe fixes\n")
		fmt.Fprintf(os.Stderr, "  fix-unsafe  Apply safe and unsafe fixes (asks first)\n")
		fmt.Fprintf(os.Stderr, "  format      Reformat files\n")
		fmt.Fprintf(os.Stderr, "  edit-config Create the config file and open it\n")
		fmt.Fprintf(os.Stderr, "  help        Show tool and configuration details\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Lintstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(exitError)
	}
	opts.verb = args[0]
	opts.files = args[1:]
	opts.timeout = time.Duration(timeoutSecs * float64(time.Second))

	if opts.verb != "help" && opts.verb != "edit-config" && len(opts.files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s needs at least one file\n", opts.verb)
		os.Exit(exitError)
	}

	return opts
}

// cliHost adapts the plugin host surface to a terminal session.
type cliHost struct {
	in       *bufio.Reader
	settings string
}

func newCLIHost() *cliHost {
	settings := ""
	if dir, err := os.UserConfigDir(); err == nil {
		settings = filepath.Join(dir, "lintstorm")
	}
	return &cliHost{
		in:       bufio.NewReader(os.Stdin),
		settings: settings,
	}
}

func (h *cliHost) Status(msg string) {
	log.Print(msg)
}

func (h *cliHost) Alert(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

func (h *cliHost) Confirm(msg string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", msg)
	line, err := h.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (h *cliHost) OpenFile(path string) bool {
	fmt.Printf("edit %s\n", path)
	return true
}

func (h *cliHost) SettingsDir() string {
	return h.settings
}
