package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the plugin config file name in the settings directory.
const FileName = "ruff_config.json"

// DefaultTimeout bounds a single tool invocation when the config does
// not say otherwise.
const DefaultTimeout = 30 * time.Second

// ruleCodePattern validates rule codes: specific codes (E501, F401),
// category prefixes (E, W, C90), or ALL.
var ruleCodePattern = regexp.MustCompile(`^[A-Z]{1,4}(?:\d+)?$|^ALL$`)

// DefaultSelect is the rule selection used when the config enables
// nothing explicitly.
var DefaultSelect = []string{"E", "W", "F", "B", "I"}

// DefaultIgnore is the ignore list written into a fresh config file.
// E501 is handled by the formatter; W191 and E111 fight tab users.
var DefaultIgnore = []string{"E501", "W191", "E111"}

// Config holds the plugin's effective settings.
type Config struct {
	// Select lists enabled rule codes or category prefixes.
	Select []string

	// Ignore lists disabled rule codes; ignore wins over select.
	Ignore []string

	// Timeout bounds one tool invocation.
	Timeout time.Duration
}

// Default returns the settings a fresh config file carries.
func Default() Config {
	return Config{
		Select:  append([]string(nil), DefaultSelect...),
		Ignore:  append([]string(nil), DefaultIgnore...),
		Timeout: DefaultTimeout,
	}
}

// Normalize fills in the default rule selection when the config enables
// and ignores nothing, and ensures a sane timeout.
func (c Config) Normalize() Config {
	if len(c.Select) == 0 && len(c.Ignore) == 0 {
		c.Select = append([]string(nil), DefaultSelect...)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// ValidRuleCode reports whether code is a valid rule code or category.
func ValidRuleCode(code string) bool {
	return ruleCodePattern.MatchString(code)
}

// Load reads the config file at path. Missing or malformed files
// degrade to an empty config with the default timeout; problems are
// logged, never returned.
func Load(path string) Config {
	base := Config{Timeout: DefaultTimeout}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config: cannot read %s: %v", path, err)
		}
		return base
	}

	content := stripComments(string(data))
	if content == "" {
		return base
	}

	if !gjson.Valid(content) {
		log.Printf("config: invalid JSON in %s", path)
		return base
	}

	root := gjson.Parse(content)
	if !root.IsObject() {
		log.Printf("config: %s must be a JSON object, not array/string", path)
		return base
	}

	base.Select = ruleCodes(root.Get("select"), "select")
	base.Ignore = ruleCodes(root.Get("ignore"), "ignore")

	if timeout := root.Get("timeout"); timeout.Exists() {
		if secs := timeout.Float(); secs > 0 {
			base.Timeout = time.Duration(secs * float64(time.Second))
		} else {
			log.Printf("config: invalid timeout %q, using default %s", timeout.String(), DefaultTimeout)
		}
	}

	return base
}

// ruleCodes extracts and validates a rule-code array field.
func ruleCodes(field gjson.Result, name string) []string {
	if !field.Exists() {
		return nil
	}
	if !field.IsArray() {
		log.Printf("config: %q must be an array", name)
		return nil
	}

	var valid, invalid []string
	for _, item := range field.Array() {
		code, ok := item.Value().(string)
		if !ok || !ValidRuleCode(code) {
			invalid = append(invalid, item.String())
			continue
		}
		valid = append(valid, code)
	}

	if len(invalid) > 0 {
		log.Printf("config: invalid %s codes: %s", name, strings.Join(invalid, ", "))
	}

	return valid
}

// stripComments removes whole-line // and # comments and blank lines.
func stripComments(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// WriteDefault creates the default config file at path, creating parent
// directories as needed. Existing files are left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "timeout", int(DefaultTimeout/time.Second)); err != nil {
		return fmt.Errorf("config: build default: %w", err)
	}
	if doc, err = sjson.Set(doc, "ignore", DefaultIgnore); err != nil {
		return fmt.Errorf("config: build default: %w", err)
	}
	if doc, err = sjson.Set(doc, "select", DefaultSelect); err != nil {
		return fmt.Errorf("config: build default: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create settings dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("config: write default: %w", err)
	}

	return nil
}
