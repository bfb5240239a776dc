// Package assets resolves the external resources a document references
// before rendering begins: images by URL or inline data, fonts by family.
//
// The preloader's contract is that it never fails as a whole. Every
// requested URL resolves to either a decoded image or a generated
// placeholder; individual failures are recorded per asset and reported
// through the optional progress callback, not raised. Loads fan out in
// parallel with no concurrency cap — template asset counts are tens, not
// thousands.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	// Registered decoders for the formats templates reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/retry"
)

// Status of one resolved asset.
type Status string

// Asset resolution states.
const (
	StatusLoaded Status = "loaded"
	StatusFailed Status = "failed"
)

// Asset is the result of resolving one image URL. When Status is
// StatusFailed, Image holds the generated placeholder and Err the cause.
type Asset struct {
	URL    string
	Image  image.Image
	Status Status
	Err    error
}

// Placeholder reports whether the asset's image is a substitute rather
// than the fetched bitmap.
func (a *Asset) Placeholder() bool { return a.Status == StatusFailed }

// ProgressFunc is invoked after every individual resolution, success or
// placeholder, with the number resolved so far and the total requested.
type ProgressFunc func(loaded, total int)

// DefaultTimeout bounds each individual image load.
const DefaultTimeout = 10 * time.Second

// Preloader fetches and caches document assets. A preloader instance
// caches by URL for its lifetime, so repeated renders of the same
// document do not refetch.
type Preloader struct {
	client   *http.Client
	timeout  time.Duration
	policy   retry.Policy
	progress ProgressFunc
	debug    bool

	mu    sync.Mutex
	cache map[string]*Asset

	fonts *FontRegistry
}

// Option configures a Preloader.
type Option func(*Preloader)

// WithHTTPClient sets the client used for image fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Preloader) { p.client = c }
}

// WithTimeout sets the per-image load timeout. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Preloader) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithRetryPolicy sets the backoff schedule for image fetches.
func WithRetryPolicy(p retry.Policy) Option {
	return func(pl *Preloader) { pl.policy = p }
}

// WithProgress sets the per-resolution progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Preloader) { p.progress = fn }
}

// WithDebug enables per-asset debug logging.
func WithDebug(debug bool) Option {
	return func(p *Preloader) { p.debug = debug }
}

// WithFontRegistry sets the registry consulted by PreloadFonts.
func WithFontRegistry(r *FontRegistry) Option {
	return func(p *Preloader) { p.fonts = r }
}

// NewPreloader creates a preloader with an empty cache.
func NewPreloader(opts ...Option) *Preloader {
	p := &Preloader{
		client:  &http.Client{},
		timeout: DefaultTimeout,
		policy:  retry.DefaultPolicy(),
		cache:   make(map[string]*Asset),
		fonts:   DefaultFonts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PreloadImages resolves every URL in parallel and returns a map with one
// entry per distinct URL. It never returns an error: unreachable,
// timed-out, and undecodable sources map to placeholder assets with
// StatusFailed.
func (p *Preloader) PreloadImages(ctx context.Context, urls []string) map[string]*Asset {
	distinct := dedupe(urls)
	results := make(map[string]*Asset, len(distinct))
	total := len(distinct)
	if total == 0 {
		return results
	}

	var (
		resMu  sync.Mutex
		loaded int
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, url := range distinct {
		g.Go(func() error {
			asset := p.loadOne(ctx, url)

			resMu.Lock()
			results[url] = asset
			loaded++
			n := loaded
			resMu.Unlock()

			if p.progress != nil {
				p.progress(n, total)
			}
			return nil
		})
	}
	// Individual failures become placeholders, so the join never fails.
	_ = g.Wait()

	return results
}

// loadOne resolves a single URL, consulting and populating the cache.
func (p *Preloader) loadOne(ctx context.Context, url string) *Asset {
	p.mu.Lock()
	if cached, ok := p.cache[url]; ok {
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	img, err := p.fetchImage(ctx, url)
	asset := &Asset{URL: url, Image: img, Status: StatusLoaded}
	if err != nil {
		asset.Image = Placeholder(PlaceholderWidth, PlaceholderHeight)
		asset.Status = StatusFailed
		asset.Err = err
		if p.debug {
			studio.Logger().Warn("asset load failed, using placeholder", "url", url, "error", err)
		} else {
			studio.Logger().Debug("asset load failed, using placeholder", "url", url, "error", err)
		}
	}

	p.mu.Lock()
	p.cache[url] = asset
	p.mu.Unlock()
	return asset
}

// fetchImage retrieves and decodes one image source. Inline data URLs
// decode directly; everything else goes over HTTP with the per-image
// timeout spanning all retry attempts. Connection failures and 5xx
// responses retry; other HTTP errors and undecodable bodies do not.
func (p *Preloader) fetchImage(ctx context.Context, url string) (image.Image, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURL(url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return retry.DoValue(ctx, p.policy, func() (image.Image, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, retry.Permanent(fmt.Errorf("assets: build request: %w", err))
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("assets: fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if err := retry.HTTPStatus(resp.StatusCode, nil); err != nil {
			return nil, fmt.Errorf("assets: fetch %s: %w", url, err)
		}

		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, retry.Permanent(fmt.Errorf("assets: decode %s: %w", url, err))
		}
		return img, nil
	})
}

// decodeDataURL decodes an inline data: URL (base64 or percent-plain).
func decodeDataURL(url string) (image.Image, error) {
	comma := strings.IndexByte(url, ',')
	if comma < 0 {
		return nil, fmt.Errorf("assets: malformed data URL")
	}
	meta, payload := url[:comma], url[comma+1:]

	var r io.Reader = strings.NewReader(payload)
	if strings.HasSuffix(meta, ";base64") {
		r = base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload))
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode data URL: %w", err)
	}
	return img, nil
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
