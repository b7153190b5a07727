package site

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanmarlow/givesite/internal/model"
)

func TestRenderRowWithIcon(t *testing.T) {
	rows := RenderTableRows([]Entry{{
		Org: model.Organization{
			Name:    "Hope Kitchen",
			Website: "hopekitchen.example",
			Class:   "Local",
			Reason:  "food",
			Summary: "Meals for neighbors.",
		},
		Icon: "hope-kitchen.png",
	}})

	for _, want := range []string{
		`<img class="favicon" src="favicon/hope-kitchen.png"`,
		`href="https://hopekitchen.example"`,
		`title="Local Giving">🏘️`,
		`title="Food Security">🍎`,
		`<span class="summary">Meals for neighbors.</span>`,
	} {
		if !strings.Contains(rows, want) {
			t.Errorf("rendered row missing %q\n%s", want, rows)
		}
	}
}

func TestRenderRowWithoutIconOrWebsite(t *testing.T) {
	rows := RenderTableRows([]Entry{{
		Org: model.Organization{Name: "Quiet Fund"},
	}})

	if !strings.Contains(rows, `<span class="favicon-fallback" aria-hidden="true">🌐</span>`) {
		t.Error("missing fallback glyph for icon-less organization")
	}
	if strings.Contains(rows, "<a ") {
		t.Error("organization without a website must not be a link")
	}
	if !strings.Contains(rows, `<span class="org-name">Quiet Fund</span>`) {
		t.Error("missing plain org name span")
	}
	// Placeholder copy for blank fields.
	if !strings.Contains(rows, "Details coming soon.") {
		t.Error("missing summary placeholder")
	}
	if !strings.Contains(rows, `title="Undesignated">❓`) {
		t.Error("missing undesignated scope badge")
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	rows := RenderTableRows([]Entry{{
		Org: model.Organization{
			Name:    "Food & Water <Watch>",
			Summary: `say "hi"`,
		},
	}})

	if !strings.Contains(rows, "Food &amp; Water &lt;Watch&gt;") {
		t.Errorf("name not escaped:\n%s", rows)
	}
	if strings.Contains(rows, "<Watch>") {
		t.Error("raw markup leaked into output")
	}
}

func TestRenderRatingBadges(t *testing.T) {
	rows := RenderTableRows([]Entry{{
		Org: model.Organization{
			Name:             "Rated Org",
			CharityNavigator: "https://cn.example/rated",
		},
	}})

	if !strings.Contains(rows, `href="https://cn.example/rated"`) {
		t.Error("missing Charity Navigator badge link")
	}
	// No GuideStar URL: exactly one empty badge slot.
	if got := strings.Count(rows, `<span class="badge-empty"`); got != 1 {
		t.Errorf("empty badge count = %d, want 1", got)
	}
}

func TestInjectPortfolio(t *testing.T) {
	src := `<html><body>
<table class="portfolio-table"><thead></thead><tbody>
    <tr><td>placeholder</td></tr>
</tbody></table>
</body></html>`

	out, ok := InjectPortfolio(src, "    <tr><td>real</td></tr>\n")
	if !ok {
		t.Fatal("injection anchor not found")
	}
	if !strings.Contains(out, "<tr><td>real</td></tr>") {
		t.Error("rows not injected")
	}
	if strings.Contains(out, "placeholder") {
		t.Error("placeholder rows not replaced")
	}
}

func TestInjectPortfolioNoAnchor(t *testing.T) {
	src := `<html><body>no table here</body></html>`
	out, ok := InjectPortfolio(src, "rows")
	if ok {
		t.Fatal("expected ok=false without anchor markup")
	}
	if out != src {
		t.Error("source must pass through unchanged")
	}
}

func TestWritePages(t *testing.T) {
	srcDir := t.TempDir()
	distDir := t.TempDir()
	index := `<table class="portfolio-table"><tbody>
</tbody></table>`
	if err := os.WriteFile(filepath.Join(srcDir, "index.html"), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "styles.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := WritePages(srcDir, distDir, "    <tr><td>row</td></tr>\n", logger); err != nil {
		t.Fatalf("WritePages: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(distDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<tr><td>row</td></tr>") {
		t.Error("assembled index missing injected rows")
	}
	if _, err := os.Stat(filepath.Join(distDir, "portfolio_table.html")); err != nil {
		t.Errorf("fragment not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(distDir, "styles.css")); err != nil {
		t.Errorf("stylesheet not copied: %v", err)
	}
}

func TestWritePagesMissingSourceIndexFails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := WritePages(t.TempDir(), t.TempDir(), "", logger); err == nil {
		t.Fatal("expected error for missing source index.html")
	}
}
