package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// InjectPortfolio replaces the contents of the portfolio table's <tbody>
// in srcHTML with the rendered rows. When the anchor markup cannot be
// found the source document is returned unchanged and ok is false.
func InjectPortfolio(srcHTML, rows string) (string, bool) {
	anchor := strings.Index(srcHTML, `class="portfolio-table"`)
	if anchor < 0 {
		return srcHTML, false
	}
	start := strings.Index(srcHTML[anchor:], "<tbody>")
	if start < 0 {
		return srcHTML, false
	}
	start += anchor + len("<tbody>")
	end := strings.Index(srcHTML[start:], "</tbody>")
	if end < 0 {
		return srcHTML, false
	}
	end += start
	return srcHTML[:start] + "\n" + strings.TrimRight(rows, "\n") + "\n                " + srcHTML[end:], true
}

// WritePages writes the standalone portfolio fragment, the assembled index
// page, and the stylesheet into distDir. A missing source index.html is
// fatal; a missing stylesheet is only logged.
func WritePages(srcDir, distDir, rows string, logger *slog.Logger) error {
	fragment := filepath.Join(distDir, "portfolio_table.html")
	if err := os.WriteFile(fragment, []byte(rows), 0o644); err != nil {
		return fmt.Errorf("write portfolio fragment: %w", err)
	}

	indexSrc := filepath.Join(srcDir, "index.html")
	srcHTML, err := os.ReadFile(indexSrc)
	if err != nil {
		return fmt.Errorf("read source page %s: %w", indexSrc, err)
	}
	assembled, ok := InjectPortfolio(string(srcHTML), rows)
	if !ok {
		logger.Warn("portfolio table tbody not found in source page, copying as-is", "path", indexSrc)
	}
	if err := os.WriteFile(filepath.Join(distDir, "index.html"), []byte(assembled), 0o644); err != nil {
		return fmt.Errorf("write index page: %w", err)
	}

	cssSrc := filepath.Join(srcDir, "styles.css")
	css, err := os.ReadFile(cssSrc)
	if err != nil {
		logger.Warn("stylesheet not copied", "path", cssSrc, "err", err)
		return nil
	}
	if err := os.WriteFile(filepath.Join(distDir, "styles.css"), css, 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}
