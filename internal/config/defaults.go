package config

const (
	defaultConfigPath = "givesite.toml"

	defaultSrcDir     = "src"
	defaultCSVPath    = "data/organizations.csv"
	defaultDistDir    = "dist"
	defaultFaviconDir = "favicon"
	defaultImagesDir  = "images"

	defaultUserAgent       = "Mozilla/5.0 (compatible; givesite/1.0; +https://github.com/evanmarlow/givesite)"
	defaultPageTimeout     = 15
	defaultDownloadTimeout = 10
	defaultDelayMS         = 100
	defaultMaxCandidates   = 10
	defaultServiceURL      = "https://www.google.com/s2/favicons"
	defaultServiceSize     = 64
)

// Default returns a Config populated with repository defaults. Every field
// is defaultable so the tool runs without a config file.
func Default() Config {
	return Config{
		Paths: Paths{
			SrcDir:     defaultSrcDir,
			CSVPath:    defaultCSVPath,
			DistDir:    defaultDistDir,
			FaviconDir: defaultFaviconDir,
			ImagesDir:  defaultImagesDir,
		},
		Favicon: Favicon{
			UserAgent:       defaultUserAgent,
			PageTimeout:     defaultPageTimeout,
			DownloadTimeout: defaultDownloadTimeout,
			DelayMS:         defaultDelayMS,
			MaxCandidates:   defaultMaxCandidates,
			ServiceURL:      defaultServiceURL,
			ServiceSize:     defaultServiceSize,
		},
	}
}
