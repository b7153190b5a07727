package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// CopyImages copies every image file from srcDir into distDir. Files with
// an entry in maxWidths get downscaled in place via ImageMagick when the
// convert binary is on PATH; a failed or unavailable downscale leaves the
// plain copy, which is always good enough to ship.
func CopyImages(srcDir, distDir string, maxWidths map[string]int, logger *slog.Logger) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read images dir %s: %w", srcDir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		dest := filepath.Join(distDir, e.Name())
		if err := copyFile(filepath.Join(srcDir, e.Name()), dest); err != nil {
			return fmt.Errorf("copy image %s: %w", e.Name(), err)
		}
		if w := maxWidths[e.Name()]; w > 0 {
			downscale(dest, w, logger)
		}
		logger.Debug("image copied", "file", e.Name())
	}
	return nil
}

func downscale(path string, maxWidth int, logger *slog.Logger) {
	if _, err := exec.LookPath("convert"); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "convert", path,
		"-resize", fmt.Sprintf("%dx%d>", maxWidth, maxWidth),
		"-quality", "85", "-strip", path)
	if err := cmd.Run(); err != nil {
		logger.Debug("image downscale skipped", "file", filepath.Base(path), "err", err)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
