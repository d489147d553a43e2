package cli

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	xdg := filepath.Join(t.TempDir(), "xdg")
	override := filepath.Join(t.TempDir(), "sheets") + string(os.PathSeparator)

	tests := []struct {
		name     string
		override string
		xdg      string
		want     string
	}{
		{"home fallback", "", "", filepath.Join(home, ".cache", appName)},
		{"xdg cache home", "", xdg, filepath.Join(xdg, appName)},
		{"explicit dir wins", override, xdg, filepath.Clean(override)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			t.Setenv(envCacheDir, tt.override)

			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "labels")
	t.Setenv(envCacheDir, dir)

	fc, err := openFileCache()
	if err != nil {
		t.Fatal(err)
	}
	if fc.Dir() != dir {
		t.Errorf("FileCache.Dir() = %q, want %q", fc.Dir(), dir)
	}

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != fc.Dir() {
		t.Errorf("cache path printed %q, want %q", got, fc.Dir())
	}
}

func TestCacheClearAfterGenerate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envCacheDir, dir)
	t.Setenv(envRedisURL, "")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"generate", "-n", "3", "-f", "pdf,json", "-o", t.TempDir() + string(os.PathSeparator)})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n := countEntries(t, dir); n != 2 {
		t.Fatalf("cache holds %d entries after generate, want 2", n)
	}

	root = New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("cache holds %d entries after clear, want 0", n)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory should survive clear: %v", err)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return n
}
