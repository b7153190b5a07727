package favicon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanmarlow/givesite/internal/model"
)

// Strategy names, reported in Resolution.Source.
const (
	SourceCache     = "cache"
	SourceHTML      = "html"
	SourceWellKnown = "well-known"
	SourceService   = "service"
)

// wellKnownPaths is the fixed probe list for the well-known strategy, in
// order of preference.
var wellKnownPaths = []string{
	"/favicon.ico",
	"/favicon.png",
	"/apple-touch-icon.png",
	"/apple-touch-icon-precomposed.png",
	"/favicon-32x32.png",
	"/favicon-16x16.png",
	"/icon.png",
	"/logo.png",
	"/images/favicon.ico",
	"/images/favicon.png",
	"/img/favicon.ico",
	"/img/favicon.png",
	"/assets/favicon.ico",
	"/assets/favicon.png",
	"/static/favicon.ico",
	"/static/favicon.png",
	"/public/favicon.ico",
	"/public/favicon.png",
}

// Options configures a Resolver. Zero values fall back to working defaults
// so tests can construct partial option sets.
type Options struct {
	CacheDir        string        // favicon cache directory (must exist)
	UserAgent       string        // sent on every request
	PageTimeout     time.Duration // root-page fetch bound
	DownloadTimeout time.Duration // per icon download bound
	Delay           time.Duration // politeness pause between downloads
	MaxCandidates   int           // cap on HTML-discovered candidates to try
	ServiceURL      string        // remote favicon-resolution service
	ServiceSize     int           // pixel size requested from the service
	Refetch         bool          // bypass the cache and overwrite artifacts
}

// Resolution is the outcome of resolving one organization.
type Resolution struct {
	Slug     string
	Filename string // empty when every strategy was exhausted
	Source   string // strategy that produced the artifact, or ""
}

// Found reports whether an artifact was produced.
func (r Resolution) Found() bool { return r.Filename != "" }

// Resolver runs the strategy chain. It is stateless between calls apart
// from the cache directory on disk, and processes organizations strictly
// sequentially.
type Resolver struct {
	opts       Options
	fetcher    *Fetcher
	extractors []Extractor
	logger     *slog.Logger
}

func NewResolver(opts Options, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 15 * time.Second
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = 10 * time.Second
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = 10
	}
	if opts.ServiceURL == "" {
		opts.ServiceURL = "https://www.google.com/s2/favicons"
	}
	if opts.ServiceSize <= 0 {
		opts.ServiceSize = 64
	}
	return &Resolver{
		opts:    opts,
		fetcher: NewFetcher(opts.UserAgent, logger),
		// DOM extraction first; the regex extractor only gets a shot when
		// the parse surfaced no usable links.
		extractors: []Extractor{DOMExtractor{}, RegexExtractor{}},
		logger:     logger,
	}
}

// Resolve determines the icon artifact for org. An organization without a
// usable website is absent before any strategy runs; a cached artifact
// short-circuits all network activity unless Refetch is set. Exhausting
// the chain returns an absent Resolution, never an error.
func (r *Resolver) Resolve(ctx context.Context, org model.Organization) Resolution {
	res := Resolution{Slug: model.Slugify(org.Name)}

	root, ok := siteRoot(org.Website)
	if !ok {
		return res
	}

	if !r.opts.Refetch {
		if name, ok := CachedIcon(r.opts.CacheDir, res.Slug); ok {
			r.logger.Debug("favicon cached", "slug", res.Slug, "file", name)
			res.Filename, res.Source = name, SourceCache
			return res
		}
	}

	r.logger.Info("fetching favicon", "org", org.Name, "host", root.Host)
	stem := filepath.Join(r.opts.CacheDir, res.Slug)

	strategies := []struct {
		name string
		run  func(context.Context, *url.URL, string) (string, bool)
	}{
		{SourceHTML, r.fromHTML},
		{SourceWellKnown, r.fromWellKnown},
		{SourceService, r.fromService},
	}
	for _, s := range strategies {
		if ctx.Err() != nil {
			return res
		}
		if name, ok := s.run(ctx, root, stem); ok {
			res.Filename, res.Source = name, s.name
			return res
		}
		r.logger.Debug("strategy exhausted", "slug", res.Slug, "strategy", s.name)
	}

	r.logger.Info("no favicon found", "org", org.Name)
	return res
}

// siteRoot normalizes a website field to its scheme+host root. Scheme-less
// values get https. A value with no host counts as no website.
func siteRoot(website string) (*url.URL, bool) {
	website = strings.TrimSpace(website)
	if website == "" {
		return nil, false
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, true
}

// fromHTML fetches the site root and tries the icon links declared in its
// markup, best candidate first.
func (r *Resolver) fromHTML(ctx context.Context, root *url.URL, stem string) (string, bool) {
	pctx, cancel := context.WithTimeout(ctx, r.opts.PageTimeout)
	doc, ok := r.fetcher.FetchPage(pctx, root.String())
	cancel()
	if !ok {
		return "", false
	}

	var candidates []Candidate
	for _, ex := range r.extractors {
		if candidates = ex.Extract(root, doc); len(candidates) > 0 {
			r.logger.Debug("icon links found", "extractor", ex.Name(), "count", len(candidates))
			break
		}
	}
	SortCandidates(candidates)

	tried := map[string]bool{}
	attempts := 0
	for _, c := range candidates {
		if attempts >= r.opts.MaxCandidates {
			break
		}
		if tried[c.URL] {
			continue
		}
		tried[c.URL] = true
		attempts++
		if name, ok := r.download(ctx, c.URL, stem); ok {
			return name, true
		}
		if !r.pause(ctx) {
			return "", false
		}
	}
	return "", false
}

// fromWellKnown probes the conventional icon locations against the site
// root, first hit wins.
func (r *Resolver) fromWellKnown(ctx context.Context, root *url.URL, stem string) (string, bool) {
	for _, p := range wellKnownPaths {
		if name, ok := r.download(ctx, root.String()+p, stem); ok {
			return name, true
		}
		if !r.pause(ctx) {
			return "", false
		}
	}
	return "", false
}

// fromService asks the remote favicon-resolution service, keyed by domain.
func (r *Resolver) fromService(ctx context.Context, root *url.URL, stem string) (string, bool) {
	svc := fmt.Sprintf("%s?domain=%s&sz=%d",
		r.opts.ServiceURL, url.QueryEscape(root.Host), r.opts.ServiceSize)
	return r.download(ctx, svc, stem)
}

func (r *Resolver) download(ctx context.Context, rawURL, stem string) (string, bool) {
	dctx, cancel := context.WithTimeout(ctx, r.opts.DownloadTimeout)
	defer cancel()
	return r.fetcher.Download(dctx, rawURL, stem)
}

// pause inserts the politeness delay between download attempts. It returns
// false when the context was canceled while waiting.
func (r *Resolver) pause(ctx context.Context) bool {
	if r.opts.Delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(r.opts.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
