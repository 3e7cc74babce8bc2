package lint

import (
	"regexp"
	"strconv"
	"strings"
)

// summaryPrefix marks tool output lines that summarize a run rather
// than report a finding (e.g. ruff's "[*] 3 fixable ...").
const summaryPrefix = "[*] "

// Parser turns a tool's raw output into diagnostics using the tool's
// compiled pattern. The pattern is compiled once per parser.
type Parser struct {
	re  *regexp.Regexp
	idx map[string]int

	// OnSummary, if set, receives summary lines instead of the
	// diagnostic list.
	OnSummary func(line string)
}

// NewParser creates a parser for the given tool definition.
func NewParser(tool *Tool) (*Parser, error) {
	re, err := tool.Validate()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			idx[name] = i
		}
	}

	return &Parser{re: re, idx: idx}, nil
}

// Parse scans output line-by-line and returns all matched diagnostics.
// Unmatched lines are skipped; summary lines go to OnSummary.
func (p *Parser) Parse(output string) []Diagnostic {
	var diags []Diagnostic

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, summaryPrefix) {
			if p.OnSummary != nil {
				p.OnSummary(line)
			}
			continue
		}

		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		diags = append(diags, p.diagnostic(m))
	}

	return diags
}

// diagnostic builds one Diagnostic from a submatch.
func (p *Parser) diagnostic(m []string) Diagnostic {
	d := Diagnostic{
		Line:     p.intGroup(m, "line"),
		Col:      p.intGroup(m, "col"),
		Message:  p.group(m, "message"),
		Severity: SeverityWarning,
	}

	if code := p.group(m, "error"); code != "" {
		d.Code = code
		d.Severity = SeverityError
	} else if code := p.group(m, "warning"); code != "" {
		d.Code = code
	}

	return d
}

// group returns a named submatch, or "" when absent.
func (p *Parser) group(m []string, name string) string {
	i, ok := p.idx[name]
	if !ok || i >= len(m) {
		return ""
	}
	return m[i]
}

// intGroup returns a named submatch parsed as an int, or 0.
func (p *Parser) intGroup(m []string, name string) int {
	n, err := strconv.Atoi(p.group(m, name))
	if err != nil {
		return 0
	}
	return n
}
