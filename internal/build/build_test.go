package build

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanmarlow/givesite/internal/config"
)

// scaffold writes a minimal src tree and roster, returning a config rooted
// in a temp dir. websiteURL may be empty.
func scaffold(t *testing.T, websiteURL string) config.Config {
	t.Helper()
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	if err := os.MkdirAll(filepath.Join(srcDir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	index := `<html><body><table class="portfolio-table"><tbody>
</tbody></table></body></html>`
	if err := os.WriteFile(filepath.Join(srcDir, "index.html"), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "styles.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "images", "hero.png"),
		bytes.Repeat([]byte{1}, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	roster := "Org,Website,Class,Summary\nHope Kitchen," + websiteURL + ",Local,Meals.\nQuiet Fund,,Global,\n"
	csvPath := filepath.Join(root, "organizations.csv")
	if err := os.WriteFile(csvPath, []byte(roster), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Paths.SrcDir = srcDir
	cfg.Paths.CSVPath = csvPath
	cfg.Paths.DistDir = filepath.Join(root, "dist")
	cfg.Favicon.DelayMS = 1
	return cfg
}

func TestRunBuildsSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/favicon.ico" {
			w.Header().Set("Content-Type", "image/x-icon")
			w.Write(bytes.Repeat([]byte{0xAB}, 256))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := scaffold(t, srv.URL)
	// Keep the exhausted org's service step off the network.
	cfg.Favicon.ServiceURL = srv.URL + "/s2/favicons"

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		Config: cfg,
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.DistDir, "favicon", "hope-kitchen.ico")); err != nil {
		t.Errorf("favicon artifact missing: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(cfg.Paths.DistDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "hope-kitchen.ico") {
		t.Error("assembled page does not reference the fetched favicon")
	}
	if !strings.Contains(string(index), "favicon-fallback") {
		t.Error("website-less organization should render the fallback glyph")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DistDir, "images", "hero.png")); err != nil {
		t.Errorf("image not copied: %v", err)
	}
	if !strings.Contains(out.String(), "Hope Kitchen") {
		t.Error("summary table missing organization row")
	}
}

func TestRunMissingRosterFails(t *testing.T) {
	cfg := scaffold(t, "")
	cfg.Paths.CSVPath = filepath.Join(t.TempDir(), "absent.csv")

	if err := Run(context.Background(), Options{Config: cfg}); err == nil {
		t.Fatal("expected error for missing roster")
	}
}

func TestRunCleanRemovesStaleOutput(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := scaffold(t, "")
	cfg.Favicon.ServiceURL = srv.URL + "/s2/favicons"
	stale := filepath.Join(cfg.Paths.DistDir, "leftover.txt")
	if err := os.MkdirAll(cfg.Paths.DistDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Run(context.Background(), Options{Config: cfg, Clean: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("clean build kept stale output")
	}
}

func TestRunCancelledContext(t *testing.T) {
	cfg := scaffold(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, Options{Config: cfg}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
