package favicon

import (
	"os"
	"path/filepath"
)

// CachedIcon reports whether a previously persisted artifact exists for
// slug under dir, checking each whitelisted extension. Any hit counts,
// regardless of which extension. At most one artifact per slug is expected;
// if a stale one with a different extension lingers, the first in whitelist
// order wins.
func CachedIcon(dir, slug string) (string, bool) {
	for _, ext := range iconExts {
		name := slug + ext
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, true
		}
	}
	return "", false
}
