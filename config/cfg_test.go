package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"

	"composer/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Editor.IDs != common.IDSchemeUuid {
		t.Errorf("IDs = %q, want %q", cfg.Editor.IDs, common.IDSchemeUuid)
	}
	if cfg.Editor.MoveAnimation != 300*time.Millisecond {
		t.Errorf("MoveAnimation = %v, want 300ms", cfg.Editor.MoveAnimation)
	}
	if cfg.Editor.Language != "nl" {
		t.Errorf("Language = %q, want nl", cfg.Editor.Language)
	}
	if cfg.Editor.Templates.CitationEvery != 3 {
		t.Errorf("CitationEvery = %d, want 3", cfg.Editor.Templates.CitationEvery)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("File level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
editor:
  ids: counter
  move_animation: 150ms
  language: en-GB
  templates:
    pictorial_units: 5
    interview_units: 7
    citation_every: 2
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Editor.IDs != common.IDSchemeCounter {
		t.Errorf("IDs = %q, want counter", cfg.Editor.IDs)
	}
	if cfg.Editor.MoveAnimation != 150*time.Millisecond {
		t.Errorf("MoveAnimation = %v, want 150ms", cfg.Editor.MoveAnimation)
	}
	if cfg.Editor.Language != "en-GB" {
		t.Errorf("Language = %q, want en-GB", cfg.Editor.Language)
	}
	if got := cfg.Editor.DefaultUnits(common.TemplatePictorial); got != 5 {
		t.Errorf("pictorial units = %d, want 5", got)
	}
	if got := cfg.Editor.DefaultUnits(common.TemplateInterview); got != 7 {
		t.Errorf("interview units = %d, want 7", got)
	}
	if got := cfg.Editor.DefaultUnits(common.TemplateTextImage); got != 0 {
		t.Errorf("textImage units = %d, want 0", got)
	}
	if cfg.Editor.Templates.CitationEvery != 2 {
		t.Errorf("CitationEvery = %d, want 2", cfg.Editor.Templates.CitationEvery)
	}
	// values absent from the file keep defaults
	if cfg.Reporting.Destination == "" {
		t.Error("Reporting destination should keep default")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid yaml",
			content: "version: 1\neditor:\n  ids: uuid\n  invalid indent\n",
		},
		{
			name:    "unknown field",
			content: "version: 1\nunknown_field: value\n",
		},
		{
			name:    "wrong version",
			content: "version: 2\n",
		},
		{
			name:    "unknown id scheme",
			content: "version: 1\neditor:\n  ids: sequence\n",
		},
		{
			name:    "citation interval too small",
			content: "version: 1\neditor:\n  templates:\n    citation_every: 0\n",
		},
		{
			name:    "bad language",
			content: "version: 1\neditor:\n  language: \"not a tag!\"\n",
		},
		{
			name:    "animation too long",
			content: "version: 1\neditor:\n  move_animation: 1m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Editor.IDs = common.IDSchemeCounter

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Editor.IDs != common.IDSchemeCounter {
		t.Errorf("IDs after dump/load = %q, want counter", cfg2.Editor.IDs)
	}
	if cfg2.Editor.MoveAnimation != cfg.Editor.MoveAnimation {
		t.Errorf("MoveAnimation after dump/load = %v, want %v", cfg2.Editor.MoveAnimation, cfg.Editor.MoveAnimation)
	}
}
