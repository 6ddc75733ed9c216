package font

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joeblew999/carto-fonts/pkg/log"
	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/rest/httpc"
	"golang.org/x/time/rate"
)

const serviceName = "font-sources"

// Downloader fetches font files one request at a time.
type Downloader struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	service   httpc.Service
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) {
		d.client = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// WithRateLimit paces requests to at most rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(d *Downloader) {
		if rps <= 0 {
			d.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		d.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewDownloader creates a downloader with the given options.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		client:    http.DefaultClient,
		userAgent: DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.service = httpc.NewServiceWithClient(serviceName, d.client, d.withUserAgent)
	return d
}

func (d *Downloader) withUserAgent(r *http.Request) *http.Request {
	r.Header.Set("User-Agent", d.userAgent)
	return r
}

// get issues a GET and returns the response only for a 200 status.
func (d *Downloader) get(ctx context.Context, url string) (*http.Response, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	log.Debug("Requesting font source", "url", url)
	// A failing mirror must not short-circuit later files on the same host.
	breaker.NoBreakerFor(req.URL.Host)
	resp, err := d.service.DoRequest(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp, nil
}

// DownloadToFile fetches destination from the first URL that answers and
// writes it to dir/destination, replacing any existing file.
// Failed URLs are logged and the next one is tried.
func (d *Downloader) DownloadToFile(ctx context.Context, urls []string, destination, dir string) (FileInfo, error) {
	path := filepath.Join(dir, destination)

	var lastErr error
	for i, url := range urls {
		size, err := d.fetchTo(ctx, url, path)
		if err == nil {
			log.Info("Downloaded font", "file", destination, "url", url, "bytes", size)
			return FileInfo{Name: destination, Path: path, URL: url, Size: size}, nil
		}
		if ctx.Err() != nil {
			return FileInfo{}, ctx.Err()
		}

		lastErr = err
		if i < len(urls)-1 {
			log.Warn("Failed to download, retrying with next font source", "url", url, "error", err)
		}
	}

	return FileInfo{}, &DownloadError{
		Destination: destination,
		URLs:        urls,
		Err:         lastErr,
	}
}

// fetchTo streams one URL into path.
func (d *Downloader) fetchTo(ctx context.Context, url, path string) (int64, error) {
	resp, err := d.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	return n, file.Close()
}

// EnsureDir creates dir before any download. An existing directory only logs a warning.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("font directory %s is not a directory", dir)
		}
		log.Warn("Font directory already exists", "dir", dir)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create font directory: %w", err)
	}
	return nil
}
