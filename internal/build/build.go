// Package build orchestrates a full site build: lock, load, resolve,
// render, assemble.
package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/evanmarlow/givesite/internal/config"
	"github.com/evanmarlow/givesite/internal/dataset"
	"github.com/evanmarlow/givesite/internal/favicon"
	"github.com/evanmarlow/givesite/internal/site"
)

// Options configures a build run.
type Options struct {
	Config      config.Config
	Clean       bool // remove the dist directory first
	Refetch     bool // bypass the favicon cache
	Logger      *slog.Logger
	Stdout      io.Writer // summary table destination
	PrettyTable bool      // rounded table borders (stdout is a TTY)
}

// Run executes the build pipeline sequentially: one organization at a
// time, one favicon strategy at a time. Cancelling ctx aborts the whole
// build between steps.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	paths := opts.Config.Paths

	// The lock lives next to the dist dir, not inside it, so --clean
	// cannot delete it out from under a concurrent build.
	lock := flock.New(filepath.Clean(paths.DistDir) + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another build is already running (lock %s held)", lock.Path())
	}
	defer lock.Unlock()

	if opts.Clean {
		logger.Info("cleaning output directory", "dir", paths.DistDir)
		if err := os.RemoveAll(paths.DistDir); err != nil {
			return fmt.Errorf("clean %s: %w", paths.DistDir, err)
		}
	}

	faviconDir := filepath.Join(paths.DistDir, paths.FaviconDir)
	imagesDir := filepath.Join(paths.DistDir, paths.ImagesDir)
	for _, dir := range []string{paths.DistDir, faviconDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	orgs, err := dataset.Load(paths.CSVPath)
	if err != nil {
		return err
	}
	logger.Info("roster loaded", "organizations", len(orgs))

	fav := opts.Config.Favicon
	resolver := favicon.NewResolver(favicon.Options{
		CacheDir:        faviconDir,
		UserAgent:       fav.UserAgent,
		PageTimeout:     fav.PageTimeoutDuration(),
		DownloadTimeout: fav.DownloadTimeoutDuration(),
		Delay:           fav.Delay(),
		MaxCandidates:   fav.MaxCandidates,
		ServiceURL:      fav.ServiceURL,
		ServiceSize:     fav.ServiceSize,
		Refetch:         opts.Refetch,
	}, logger)

	entries := make([]site.Entry, 0, len(orgs))
	results := make([]favicon.Resolution, 0, len(orgs))
	for _, org := range orgs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("build interrupted: %w", err)
		}
		res := resolver.Resolve(ctx, org)
		entries = append(entries, site.Entry{Org: org, Icon: res.Filename})
		results = append(results, res)
	}

	rows := site.RenderTableRows(entries)
	if err := site.WritePages(paths.SrcDir, paths.DistDir, rows, logger); err != nil {
		return err
	}
	if err := site.CopyImages(filepath.Join(paths.SrcDir, "images"), imagesDir,
		opts.Config.Images.MaxWidths, logger); err != nil {
		return err
	}

	writeSummary(stdout, orgs, results, opts.PrettyTable)

	found := 0
	for _, r := range results {
		if r.Found() {
			found++
		}
	}
	logger.Info("build complete", "dist", paths.DistDir,
		"organizations", len(orgs), "icons", found)
	return nil
}
