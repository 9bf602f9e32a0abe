package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

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

	if cfg.Deck.Page.CardsPerPage != 4 {
		t.Errorf("Default cards per page = %d, want 4", cfg.Deck.Page.CardsPerPage)
	}

	if len(cfg.Deck.Assets.Sources) == 0 {
		t.Error("Expected default download sources")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
deck:
  file_name_transliterate: true
  page:
    size: 1
    cards_per_page: 4
    margin_pt: 36
    header_pt: 43.2
    gap_pt: 10
  assets:
    dir: ` + tmpDir + `
  raster:
    dpi: 300
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if !cfg.Deck.FileNameTransliterate {
		t.Error("Expected FileNameTransliterate to be true")
	}

	if cfg.Deck.Page.Size != PageSizeA4 {
		t.Errorf("Page size = %v, want a4", cfg.Deck.Page.Size)
	}

	if cfg.Deck.Page.MarginPt != 36 {
		t.Errorf("MarginPt = %f, want 36", cfg.Deck.Page.MarginPt)
	}

	if cfg.Deck.Raster.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.Deck.Raster.DPI)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
deck:
  file_name_transliterate: true
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
deck:
  file_name_transliterate: true
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// Invalid version number
	configWithInvalidVersion := `version: 2
deck:
  file_name_transliterate: true
`

	if err := os.WriteFile(configPath, []byte(configWithInvalidVersion), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected validation error for invalid version")
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
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Deck: DeckConfig{
			FileNameTransliterate: true,
			Page: PageConfig{
				Size:         PageSizeLetter,
				CardsPerPage: 4,
				MarginPt:     28.8,
				HeaderPt:     43.2,
				GapPt:        14.4,
			},
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "cards_per_page: 4") {
		t.Errorf("Dump() output missing grid values:\n%s", out)
	}
	if !strings.Contains(out, "file_name_transliterate: true") {
		t.Errorf("Dump() output missing transliterate flag:\n%s", out)
	}
}

func TestOutputFmtRoundTrip(t *testing.T) {
	for _, name := range OutputFmtNames() {
		f, err := ParseOutputFmt(name)
		if err != nil {
			t.Fatalf("ParseOutputFmt(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("OutputFmt %q round trip = %q", name, f.String())
		}
		if len(f.Ext()) == 0 {
			t.Errorf("OutputFmt %q has no extension", name)
		}
	}
	if _, err := ParseOutputFmt("pdf"); err == nil {
		t.Error("Expected error for unsupported format name")
	}
}

func TestPageSizeDims(t *testing.T) {
	w, h := PageSizeLetter.Dims()
	if w != 612 || h != 792 {
		t.Errorf("letter dims = %f x %f, want 612 x 792", w, h)
	}
	w, h = PageSizeA4.Dims()
	if w >= h {
		t.Errorf("a4 must be portrait, got %f x %f", w, h)
	}
}
