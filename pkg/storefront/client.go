// Package storefront provides platform verification, catalog validation, and
// page-level data extraction for candidate store URLs.
package storefront

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Client defines the storefront inspection operations.
type Client interface {
	// Verify detects whether the URL is a storefront on the target platform.
	Verify(ctx context.Context, rawURL string) *model.Verification
	// ValidateCategory checks the product catalog against the category
	// keyword lists.
	ValidateCategory(ctx context.Context, rawURL string) *model.CategoryValidation
	// ExtractStoreInfo scrapes name, description, and contact data from the
	// store's pages.
	ExtractStoreInfo(ctx context.Context, rawURL string) (*model.StoreInfo, error)
	// ContactEmail returns the first plausible contact address found on the
	// store's pages.
	ContactEmail(ctx context.Context, rawURL string) (string, error)
	// DetectCountryFromSchema reads addressCountry from JSON-LD markup.
	DetectCountryFromSchema(ctx context.Context, rawURL string) (string, error)
	// DetectCountryFromCurrency infers the country from the store currency.
	DetectCountryFromCurrency(ctx context.Context, rawURL string) (string, error)
	// DetectCountryFromTLD infers the country from the domain's TLD.
	DetectCountryFromTLD(rawURL string) string
}

// Option configures the storefront client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithCategoryKeywords sets the positive and negative catalog keyword lists.
func WithCategoryKeywords(keywords, negatives []string) Option {
	return func(c *httpClient) {
		c.keywords = keywords
		c.negatives = negatives
	}
}

// WithMinCategoryRatio sets the minimum matched-product ratio for catalog
// validation.
func WithMinCategoryRatio(ratio float64) Option {
	return func(c *httpClient) {
		c.minRatio = ratio
	}
}

// WithPerHostRate sets the request rate applied per target host.
func WithPerHostRate(limit rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.perHostRate = limit
		c.perHostBurst = burst
	}
}

type httpClient struct {
	http         *http.Client
	userAgent    string
	keywords     []string
	negatives    []string
	minRatio     float64
	perHostRate  rate.Limit
	perHostBurst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a storefront client. Merchant sites get a conservative
// per-host request rate and a browser User-Agent.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		minRatio:     0.30,
		perHostRate:  2,
		perHostBurst: 4,
		limiters:     make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// limiterFor returns the rate limiter for the URL's host, creating one on
// first use.
func (c *httpClient) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(c.perHostRate, c.perHostBurst)
		c.limiters[host] = lim
	}
	return lim
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// fetch performs a rate-limited GET with exponential backoff on transient
// failures and returns the body and status code.
func (c *httpClient) fetch(ctx context.Context, rawURL string) ([]byte, int, error) {
	const maxAttempts = 3

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "storefront: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiterFor(rawURL).Wait(ctx); err != nil {
			return nil, 0, eris.Wrap(err, "storefront: rate limiter wait")
		}

		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			zap.L().Debug("storefront: request failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			if !c.backoff(ctx, attempt) {
				return nil, 0, ctx.Err()
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "storefront: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts-1 {
			lastErr = eris.Errorf("storefront: status %d from %s", resp.StatusCode, rawURL)
			if !c.backoff(ctx, attempt) {
				return nil, 0, ctx.Err()
			}
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// backoff sleeps for an exponentially growing jittered delay. Returns false
// when the context is cancelled.
func (c *httpClient) backoff(ctx context.Context, attempt int) bool {
	d := time.Duration(float64(time.Second) * math.Pow(2, float64(attempt)))
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// normalizeCandidateURL ensures the URL has a scheme and no trailing slash.
func normalizeCandidateURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return s
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return strings.TrimRight(s, "/")
}
