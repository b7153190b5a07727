package favicon

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// Responses under this size are treated as non-icon placeholders
	// (1×1 tracking pixels, empty error pages served with status 200).
	minIconBytes = 100

	// Cap on a single icon download.
	maxIconBytes = 2 << 20

	// Cap on how much of a page we read when hunting for icon links.
	maxPageBytes = 200 << 10
)

// iconExts is the whitelist of cache artifact extensions, in the order the
// cache lookup checks them.
var iconExts = []string{".png", ".jpg", ".jpeg", ".ico", ".svg", ".webp", ".gif"}

// Fetcher performs the bounded HTTP retrievals for the resolver. All
// failures are reported as boolean outcomes; to the caller every failed
// retrieval means "try the next candidate".
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

func NewFetcher(userAgent string, logger *slog.Logger) *Fetcher {
	// Timeouts are enforced per request through contexts, so the client
	// itself carries none.
	return &Fetcher{client: &http.Client{}, userAgent: userAgent, logger: logger}
}

// newRequest builds a GET with a browser-like header set; bare requests get
// rejected by enough servers to make this worth carrying.
func (f *Fetcher) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*,text/html,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("DNT", "1")
	return req, nil
}

// FetchPage retrieves up to maxPageBytes of the document at rawURL.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) ([]byte, bool) {
	req, err := f.newRequest(ctx, rawURL)
	if err != nil {
		return nil, false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("page fetch failed", "url", rawURL, "err", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug("page fetch rejected", "url", rawURL, "status", resp.StatusCode)
		return nil, false
	}
	doc, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// Download retrieves rawURL and writes the payload atomically to
// <stem>.<ext>, where ext is inferred from the response. It returns the
// written filename (without directory). Any network error, non-2xx status,
// or undersized payload returns ok=false.
func (f *Fetcher) Download(ctx context.Context, rawURL, stem string) (string, bool) {
	req, err := f.newRequest(ctx, rawURL)
	if err != nil {
		return "", false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("download failed", "url", rawURL, "err", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug("download rejected", "url", rawURL, "status", resp.StatusCode)
		return "", false
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return "", false
	}
	if len(data) < minIconBytes {
		f.logger.Debug("download too small", "url", rawURL, "bytes", len(data))
		return "", false
	}

	dest := stem + extensionFor(resp.Header.Get("Content-Type"), rawURL)
	if err := writeFileAtomic(dest, data); err != nil {
		f.logger.Debug("persist failed", "path", dest, "err", err)
		return "", false
	}
	f.logger.Debug("icon saved", "url", rawURL, "file", filepath.Base(dest), "bytes", len(data))
	return filepath.Base(dest), true
}

// extensionFor picks the artifact extension: the normalized content-type
// subtype first, then a whitelisted extension in the URL path, then ".ico".
func extensionFor(contentType, rawURL string) string {
	ct := strings.ToLower(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if i := strings.Index(ct, "/"); i >= 0 {
		switch ct[i+1:] {
		case "png", "webp", "gif":
			return "." + ct[i+1:]
		case "jpeg", "jpg":
			return ".jpg"
		case "svg+xml":
			return ".svg"
		case "x-icon", "vnd.microsoft.icon", "ico":
			return ".ico"
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		for _, known := range iconExts {
			if ext == known {
				return ext
			}
		}
	}
	return ".ico"
}

func writeFileAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".favicon-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
