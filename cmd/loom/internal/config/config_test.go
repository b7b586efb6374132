package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.App.Name != "" || cfg.Debug.Port != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadOptionalParses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "loom.yaml", "app:\n  name: demo\ndebug:\n  port: 9001\n")

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.App.Name != "demo" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "demo")
	}
	if cfg.Debug.Port != 9001 {
		t.Errorf("Debug.Port = %d, want 9001", cfg.Debug.Port)
	}
}

func TestLoadOptionalInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "loom.yaml", "app: [not a mapping\n")

	if _, err := LoadOptional(dir); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/myapp\n\ngo 1.24.0\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ModulePath != "example.com/myapp" {
		t.Errorf("ModulePath = %q, want %q", resolved.ModulePath, "example.com/myapp")
	}
	if resolved.AppName != "myapp" {
		t.Errorf("AppName = %q, want %q", resolved.AppName, "myapp")
	}
	if resolved.DebugPort != DefaultDebugPort {
		t.Errorf("DebugPort = %d, want %d", resolved.DebugPort, DefaultDebugPort)
	}
	if resolved.Root != dir {
		t.Errorf("Root = %q, want %q", resolved.Root, dir)
	}
}

func TestResolveVersionedModulePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/myapp/v2\n\ngo 1.24.0\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.AppName != "myapp" {
		t.Errorf("AppName = %q, want %q", resolved.AppName, "myapp")
	}
}

func TestResolveConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/myapp\n\ngo 1.24.0\n")
	writeFile(t, dir, "loom.yaml", "app:\n  name: custom\ndebug:\n  port: 8123\n")

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.AppName != "custom" {
		t.Errorf("AppName = %q, want %q", resolved.AppName, "custom")
	}
	if resolved.DebugPort != 8123 {
		t.Errorf("DebugPort = %d, want 8123", resolved.DebugPort)
	}
}

func TestResolvePortOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/myapp\n\ngo 1.24.0\n")
	writeFile(t, dir, "loom.yaml", "debug:\n  port: 70000\n")

	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected range error, got nil")
	}
}

func TestResolveMissingGoMod(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for missing go.mod, got nil")
	}
}
