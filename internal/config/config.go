// Package config loads and validates the build configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains file and directory locations for a build.
type Paths struct {
	SrcDir     string `toml:"src_dir"`     // source HTML/CSS and images
	CSVPath    string `toml:"csv_path"`    // organization roster
	DistDir    string `toml:"dist_dir"`    // build output
	FaviconDir string `toml:"favicon_dir"` // favicon cache, relative to dist_dir
	ImagesDir  string `toml:"images_dir"`  // image output, relative to dist_dir
}

// Favicon contains settings for the favicon resolution chain.
type Favicon struct {
	UserAgent       string `toml:"user_agent"`
	PageTimeout     int    `toml:"page_timeout"`     // seconds, root-page fetch
	DownloadTimeout int    `toml:"download_timeout"` // seconds, per icon download
	DelayMS         int    `toml:"delay_ms"`         // politeness pause between downloads
	MaxCandidates   int    `toml:"max_candidates"`   // HTML-discovered candidates to try
	ServiceURL      string `toml:"service_url"`      // remote favicon-resolution service
	ServiceSize     int    `toml:"service_size"`     // pixel size requested from the service
}

// Images contains per-file maximum widths for the asset copy step.
// Files not listed are copied as-is.
type Images struct {
	MaxWidths map[string]int `toml:"max_widths"`
}

// Config is the full build configuration.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Favicon Favicon `toml:"favicon"`
	Images  Images  `toml:"images"`
}

// Load reads a TOML config file and overlays it on the defaults. An empty
// path, or a missing file at the default location, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// PageTimeoutDuration returns the root-page fetch timeout.
func (f Favicon) PageTimeoutDuration() time.Duration {
	return time.Duration(f.PageTimeout) * time.Second
}

// DownloadTimeoutDuration returns the per-download timeout.
func (f Favicon) DownloadTimeoutDuration() time.Duration {
	return time.Duration(f.DownloadTimeout) * time.Second
}

// Delay returns the politeness pause inserted between download attempts.
func (f Favicon) Delay() time.Duration {
	return time.Duration(f.DelayMS) * time.Millisecond
}
