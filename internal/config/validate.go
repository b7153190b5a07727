package config

import "fmt"

// Validate checks the configuration for values the build cannot work with.
func (c *Config) Validate() error {
	if c.Paths.CSVPath == "" {
		return fmt.Errorf("paths.csv_path must not be empty")
	}
	if c.Paths.DistDir == "" {
		return fmt.Errorf("paths.dist_dir must not be empty")
	}
	if c.Paths.FaviconDir == "" {
		return fmt.Errorf("paths.favicon_dir must not be empty")
	}
	if c.Favicon.PageTimeout <= 0 {
		return fmt.Errorf("favicon.page_timeout must be positive, got %d", c.Favicon.PageTimeout)
	}
	if c.Favicon.DownloadTimeout <= 0 {
		return fmt.Errorf("favicon.download_timeout must be positive, got %d", c.Favicon.DownloadTimeout)
	}
	if c.Favicon.DelayMS < 0 {
		return fmt.Errorf("favicon.delay_ms must not be negative, got %d", c.Favicon.DelayMS)
	}
	if c.Favicon.MaxCandidates <= 0 {
		return fmt.Errorf("favicon.max_candidates must be positive, got %d", c.Favicon.MaxCandidates)
	}
	if c.Favicon.ServiceURL == "" {
		return fmt.Errorf("favicon.service_url must not be empty")
	}
	if c.Favicon.ServiceSize <= 0 {
		return fmt.Errorf("favicon.service_size must be positive, got %d", c.Favicon.ServiceSize)
	}
	return nil
}
