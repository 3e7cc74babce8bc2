package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %s", cfg.Timeout)
	}
	if len(cfg.Select) != 0 || len(cfg.Ignore) != 0 {
		t.Errorf("missing file should load empty rules: %+v", cfg)
	}
}

func TestLoadBasic(t *testing.T) {
	path := writeConfig(t, `{
		"select": ["E", "F401"],
		"ignore": ["W191"],
		"timeout": 10
	}`)

	cfg := Load(path)

	if len(cfg.Select) != 2 || cfg.Select[0] != "E" || cfg.Select[1] != "F401" {
		t.Errorf("unexpected select: %v", cfg.Select)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "W191" {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Timeout)
	}
}

func TestLoadStripsComments(t *testing.T) {
	path := writeConfig(t, `// plugin config
# another comment
{
	"select": ["ALL"]
}`)

	cfg := Load(path)

	if len(cfg.Select) != 1 || cfg.Select[0] != "ALL" {
		t.Errorf("comments broke parsing: %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"select": [`)

	cfg := Load(path)

	if len(cfg.Select) != 0 || cfg.Timeout != DefaultTimeout {
		t.Errorf("invalid JSON should degrade to defaults: %+v", cfg)
	}
}

func TestLoadNonObject(t *testing.T) {
	path := writeConfig(t, `["E", "W"]`)

	cfg := Load(path)

	if len(cfg.Select) != 0 {
		t.Errorf("array document should degrade to defaults: %+v", cfg)
	}
}

func TestLoadFiltersInvalidCodes(t *testing.T) {
	path := writeConfig(t, `{"select": ["E501", "lowercase", "TOOLONGX1", "W", 42]}`)

	cfg := Load(path)

	if len(cfg.Select) != 2 || cfg.Select[0] != "E501" || cfg.Select[1] != "W" {
		t.Errorf("invalid codes not filtered: %v", cfg.Select)
	}
}

func TestLoadInvalidFieldTypes(t *testing.T) {
	path := writeConfig(t, `{"select": "E", "ignore": {"a": 1}, "timeout": -5}`)

	cfg := Load(path)

	if len(cfg.Select) != 0 || len(cfg.Ignore) != 0 {
		t.Errorf("non-array rule fields should be dropped: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("invalid timeout should use default, got %s", cfg.Timeout)
	}
}

func TestValidRuleCode(t *testing.T) {
	valid := []string{"E501", "F401", "W", "B", "I", "C90", "ALL", "N"}
	for _, code := range valid {
		if !ValidRuleCode(code) {
			t.Errorf("%s should be valid", code)
		}
	}

	invalid := []string{"", "e501", "123", "TOOLONGX", "E501X"}
	for _, code := range invalid {
		if ValidRuleCode(code) {
			t.Errorf("%s should be invalid", code)
		}
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{}.Normalize()

	if len(cfg.Select) != len(DefaultSelect) {
		t.Errorf("expected default select, got %v", cfg.Select)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %s", cfg.Timeout)
	}
}

func TestNormalizeKeepsExplicitRules(t *testing.T) {
	cfg := Config{Ignore: []string{"E501"}, Timeout: time.Second}.Normalize()

	if len(cfg.Select) != 0 {
		t.Errorf("explicit ignore should suppress default select: %v", cfg.Select)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("explicit timeout overridden: %s", cfg.Timeout)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings", FileName)

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	cfg := Load(path)
	if len(cfg.Select) != len(DefaultSelect) {
		t.Errorf("unexpected select: %v", cfg.Select)
	}
	if len(cfg.Ignore) != len(DefaultIgnore) {
		t.Errorf("unexpected ignore: %v", cfg.Ignore)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("unexpected timeout: %s", cfg.Timeout)
	}
}

func TestWriteDefaultKeepsExisting(t *testing.T) {
	path := writeConfig(t, `{"timeout": 5}`)

	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	if cfg := Load(path); cfg.Timeout != 5*time.Second {
		t.Errorf("existing config overwritten: %s", cfg.Timeout)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, `{"timeout": 5}`)

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"timeout": 9}`), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Timeout != 9*time.Second {
			t.Errorf("expected reloaded timeout 9s, got %s", cfg.Timeout)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := writeConfig(t, `{}`)

	w, err := NewWatcher(path, func(Config) {})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
	if err := w.Close(); err != ErrWatcherClosed {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
