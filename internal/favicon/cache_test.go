package favicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCachedIconAnyWhitelistedExtension(t *testing.T) {
	for _, ext := range []string{".png", ".jpeg", ".svg", ".gif"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "hope-kitchen"+ext), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
			name, ok := CachedIcon(dir, "hope-kitchen")
			if !ok || name != "hope-kitchen"+ext {
				t.Errorf("CachedIcon = %q, %v; want hit on %s", name, ok, ext)
			}
		})
	}
}

func TestCachedIconMiss(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "other-org.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hope-kitchen.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if name, ok := CachedIcon(dir, "hope-kitchen"); ok {
		t.Errorf("unexpected hit %q; .txt is not a whitelisted extension", name)
	}
}
