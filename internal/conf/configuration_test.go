package conf

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Logger.LogLevel.Get() != "INFO" {
		t.Errorf("expected log_level=INFO, got %s", cfg.Logger.LogLevel.Get())
	}
	if cfg.Console.MaxLines.Get() != -1 {
		t.Errorf("expected max_lines=-1, got %d", cfg.Console.MaxLines.Get())
	}
	if cfg.Visualization.FrameBoundarySamples.Get() != 1000 {
		t.Errorf("expected frame_boundary_samples=1000, got %d", cfg.Visualization.FrameBoundarySamples.Get())
	}
	if cfg.IERS.AutoMaxAge.Get() != 30.0 {
		t.Errorf("expected auto_max_age=30.0, got %v", cfg.IERS.AutoMaxAge.Get())
	}
	if cfg.Data.DefaultHTTPUserAgent.Get() != "astropy" {
		t.Errorf("expected default_http_user_agent=astropy, got %s", cfg.Data.DefaultHTTPUserAgent.Get())
	}

	cfg.Logger.LogLevel.Set("DEBUG")
	if cfg.Logger.LogLevel.Get() != "DEBUG" {
		t.Errorf("expected log_level=DEBUG after Set, got %s", cfg.Logger.LogLevel.Get())
	}
	if New().Logger.LogLevel.Get() != "INFO" {
		t.Error("instances must not share leaves")
	}
}

func TestConfiguration_SectionOrder(t *testing.T) {
	var names []string
	for _, ns := range New().Namespaces() {
		names = append(names, ns.Name())
	}
	expected := []string{"logger", "console", "visualization.wcsaxes", "utils.iers", "utils.data"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("Namespaces() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfiguration_Serialize(t *testing.T) {
	cfg := New()
	out := cfg.Serialize()

	if !strings.HasPrefix(out, "[logger]\n# The level of the logger\nlog_level = \"INFO\"\n") {
		t.Errorf("unexpected document head:\n%s", out[:80])
	}
	for _, want := range []string{
		"[console]\n",
		"max_lines = -1\n",
		"[visualization.wcsaxes]\n",
		"[utils.iers]\n",
		"auto_max_age = 30.0\n",
		"[utils.data]\n",
		"compute_hash_block_size = 65536\n",
		"# This only provides the default value when not set by https_headers.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized document is missing %q", want)
		}
	}
	if strings.Contains(out, "units.quantity") {
		t.Error("units.quantity must not be serialized")
	}
	if out != cfg.Serialize() {
		t.Error("Serialize() is not byte-identical across calls")
	}
}

func TestDeserialize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError string
		modify      func(cfg *Configuration)
	}{
		{
			name:   "empty document",
			input:  "",
			modify: func(cfg *Configuration) {},
		},
		{
			name: "partial document",
			input: `[logger]
log_level = "DEBUG"
`,
			modify: func(cfg *Configuration) { cfg.Logger.LogLevel.Set("DEBUG") },
		},
		{
			name: "several sections",
			input: `
[logger]
log_level = "DEBUG"
log_warnings = false

[utils.iers]
auto_max_age = 12.5

[utils.data]
download_block_size = 1024
`,
			modify: func(cfg *Configuration) {
				cfg.Logger.LogLevel.Set("DEBUG")
				cfg.Logger.LogWarnings.Set(false)
				cfg.IERS.AutoMaxAge.Set(12.5)
				cfg.Data.DownloadBlockSize.Set(1024)
			},
		},
		{
			name: "unknown keys ignored",
			input: `[console]
mystery_key = 42
`,
			modify: func(cfg *Configuration) {},
		},
		{
			name: "unknown sections ignored",
			input: `[units.quantity]
latex_array_threshold = 5
`,
			modify: func(cfg *Configuration) {},
		},
		{
			name:        "section is a scalar",
			input:       "logger = 1\n",
			expectError: "logger: expected a table, got integer",
		},
		{
			name:        "type mismatch",
			input:       "[logger]\nlog_level = 1\n",
			expectError: "logger: log_level: Invalid string",
		},
		{
			name:        "integer where float expected",
			input:       "[utils.iers]\nauto_max_age = 30\n",
			expectError: "utils.iers: auto_max_age: Invalid float",
		},
		{
			name:        "int32 out of range",
			input:       "[utils.data]\ncompute_hash_block_size = 3000000000\n",
			expectError: "utils.data: compute_hash_block_size: Integer 3000000000 out of range for int32",
		},
		{
			name:        "parent of dotted section is a scalar",
			input:       "utils = \"x\"\n",
			expectError: "utils.iers: expected a table, got string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Deserialize(tt.input)
			if tt.expectError != "" {
				if err == nil {
					t.Fatalf("expected error %q but got none", tt.expectError)
				}
				if result != nil {
					t.Error("no configuration may be returned on error")
				}
				var cerr *ConfigurationError
				if !errors.As(err, &cerr) {
					t.Fatalf("expected *ConfigurationError, got %T", err)
				}
				if diff := cmp.Diff(tt.expectError, cerr.Message); diff != "" {
					t.Errorf("message mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			expected := New()
			tt.modify(expected)
			if diff := cmp.Diff(expected.Snapshot(), result.Snapshot()); diff != "" {
				t.Errorf("Deserialize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeserialize_SyntaxError(t *testing.T) {
	_, err := Deserialize("not valid toml ===")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	var perr toml.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("expected wrapped toml.ParseError, got %v", err)
	}
	if !strings.HasPrefix(err.(*ConfigurationError).Message, "parsing document: ") {
		t.Errorf("unexpected message %q", err.(*ConfigurationError).Message)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := New()
		result, err := Deserialize(cfg.Serialize())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Equal(result) {
			t.Errorf("round trip mismatch (-want +got):\n%s", cmp.Diff(cfg.Snapshot(), result.Snapshot()))
		}
	})

	t.Run("modified values", func(t *testing.T) {
		cfg := New()
		cfg.Logger.LogFilePath.Set(`C:\logs\"rastro".log`)
		cfg.Console.MaxWidth.Set(120)
		cfg.IERS.RemoteTimeout.Set(0.5)
		cfg.Data.AllowInternet.Set(false)
		cfg.Visualization.GridSamples.Set(-2147483648)

		result, err := Deserialize(cfg.Serialize())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(cfg.Snapshot(), result.Snapshot()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
		if result.Serialize() != cfg.Serialize() {
			t.Error("re-serialized document differs")
		}
	})
}

func TestSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b", "config.toml")

	cfg := New()
	cfg.Console.UnicodeOutput.Set(true)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(cfg.Snapshot(), loaded.Snapshot()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	// Overwrite keeps a single file and no temporaries.
	cfg.Console.UnicodeOutput.Set(false)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.toml" {
		t.Errorf("expected only config.toml, got %v", entries)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != New().Serialize() {
		t.Error("file content does not match the serialized defaults")
	}
}

func TestSave_ParentIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	err := New().Save(filepath.Join(blocker, "config.toml"))
	if err == nil {
		t.Fatal("expected error when a parent path is a file")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("expected *ConfigurationError, got %T", err)
	}
}

func TestSave_Symlink(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "real", "config.toml")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(target, []byte("[console]\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	link := filepath.Join(tmpDir, "config.toml")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	cfg := New()
	cfg.Console.MaxWidth.Set(120)
	if err := cfg.Save(link); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat() failed: %v", err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Errorf("expected %s to remain a symlink, got mode %v", link, info.Mode())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if diff := cmp.Diff(cfg.Serialize(), string(data)); diff != "" {
		t.Errorf("symlink target not updated (-want +got):\n%s", diff)
	}
}

func TestSave_KeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod() failed: %v", err)
	}

	if err := New().Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("expected mode 0600, got %v", got)
	}
}

func TestConfiguration_Equal(t *testing.T) {
	a, b := New(), New()
	if !a.Equal(b) {
		t.Error("defaults should be equal")
	}

	b.Console.MaxLines.Set(10)
	if a.Equal(b) {
		t.Error("expected configurations with different values to differ")
	}

	a, b = New(), New()
	a.IERS.AutoMaxAge.Set(math.NaN())
	if a.Equal(b) {
		t.Error("expected NaN to differ from the default")
	}
	b.IERS.AutoMaxAge.Set(math.NaN())
	if !a.Equal(b) {
		t.Error("expected NaN values to compare equal")
	}

	result, err := Deserialize(a.Serialize())
	if err != nil {
		t.Fatalf("Deserialize() failed: %v", err)
	}
	if !a.Equal(result) {
		t.Error("expected NaN to survive a round trip")
	}

	var nilCfg *Configuration
	if nilCfg.Equal(a) || !nilCfg.Equal(nil) {
		t.Error("unexpected nil comparison result")
	}
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(filepath.Join(tmpDir, "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	bad := filepath.Join(tmpDir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[console]\nmax_lines = \"ten\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	_, err = Load(bad)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if diff := cmp.Diff(bad+": console: max_lines: Invalid integer", err.(*ConfigurationError).Message); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestConfiguration_Lookup(t *testing.T) {
	cfg := New()

	f, err := cfg.Lookup("visualization.wcsaxes.grid_samples")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Kind() != KindInt32 || f.Value() != int32(1000) {
		t.Errorf("unexpected field %s=%v", f.Kind(), f.Value())
	}

	for _, path := range []string{"logger", "logger.", ".x", "nope.key", "logger.nope"} {
		if _, err := cfg.Lookup(path); err == nil {
			t.Errorf("Lookup(%q) expected error", path)
		}
	}
}

func TestConfiguration_SetString(t *testing.T) {
	tests := []struct {
		path        string
		text        string
		expectError bool
		check       func(cfg *Configuration) bool
	}{
		{path: "logger.log_level", text: "WARN", check: func(c *Configuration) bool { return c.Logger.LogLevel.Get() == "WARN" }},
		{path: "console.max_lines", text: "40", check: func(c *Configuration) bool { return c.Console.MaxLines.Get() == 40 }},
		{path: "utils.iers.auto_max_age", text: "7", check: func(c *Configuration) bool { return c.IERS.AutoMaxAge.Get() == 7 }},
		{path: "utils.data.allow_internet", text: "false", check: func(c *Configuration) bool { return !c.Data.AllowInternet.Get() }},
		{path: "console.max_lines", text: "4000000000", expectError: true,
			check: func(c *Configuration) bool { return c.Console.MaxLines.Get() == -1 }},
		{path: "console.use_color", text: "maybe", expectError: true,
			check: func(c *Configuration) bool { return c.Console.UseColor.Get() }},
	}

	for _, tt := range tests {
		t.Run(tt.path+"="+tt.text, func(t *testing.T) {
			cfg := New()
			err := cfg.SetString(tt.path, tt.text)
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected value after SetString(%q, %q)", tt.path, tt.text)
			}
		})
	}
}

func TestUnitsQuantity(t *testing.T) {
	units := NewUnitsQuantity()
	if units.LatexArrayThreshold.Get() != 100 {
		t.Errorf("expected latex_array_threshold=100, got %d", units.LatexArrayThreshold.Get())
	}
	if _, ok := New().Namespace(SectionUnits); ok {
		t.Error("units.quantity must not be part of Configuration")
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(filepath.Join(home, ".rastro", "config.toml"), path); diff != "" {
		t.Errorf("DefaultPath() mismatch (-want +got):\n%s", diff)
	}
}
