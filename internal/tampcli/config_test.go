package tampcli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Codec.WindowBits != 10 {
		t.Errorf("Expected WindowBits=10, got %d", cfg.Codec.WindowBits)
	}
	if cfg.Codec.LiteralBits != 8 {
		t.Errorf("Expected LiteralBits=8, got %d", cfg.Codec.LiteralBits)
	}
	if cfg.Codec.UseCustomDictionary {
		t.Error("Expected UseCustomDictionary=false")
	}
	if cfg.Stream.BufferSize != 4096 {
		t.Errorf("Expected BufferSize=4096, got %d", cfg.Stream.BufferSize)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.Codec.WindowBits != DefaultConfig().Codec.WindowBits {
		t.Errorf("expected default WindowBits, got %d", cfg.Codec.WindowBits)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tampctl.toml")
	contents := `
[codec]
window_bits = 12
literal_bits = 6
use_custom_dictionary = true

[stream]
buffer_size = 8192
verbose = true
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Codec.WindowBits != 12 {
		t.Errorf("expected WindowBits=12, got %d", cfg.Codec.WindowBits)
	}
	if cfg.Codec.LiteralBits != 6 {
		t.Errorf("expected LiteralBits=6, got %d", cfg.Codec.LiteralBits)
	}
	if !cfg.Codec.UseCustomDictionary {
		t.Error("expected UseCustomDictionary=true")
	}
	if cfg.Stream.BufferSize != 8192 {
		t.Errorf("expected BufferSize=8192, got %d", cfg.Stream.BufferSize)
	}
	if !cfg.Stream.Verbose {
		t.Error("expected Verbose=true")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error loading invalid TOML, got nil")
	}
}
