// Package hunter provides a client for the Hunter.io v2 API.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the Hunter.io operations used for contact discovery.
type Client interface {
	// FindEmail locates the most likely address for a person at a domain.
	FindEmail(ctx context.Context, domain, fullName string) (*FinderResult, error)
	// VerifyEmail checks the deliverability of an address.
	VerifyEmail(ctx context.Context, email string) (*VerifyResult, error)
	// DomainSearch lists company facts and addresses published for a domain.
	DomainSearch(ctx context.Context, domain string, limit int) (*DomainSearchResult, error)
}

// FinderResult is the parsed email-finder response.
type FinderResult struct {
	Email       string `json:"email"`
	Score       int    `json:"score"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Position    string `json:"position"`
	LinkedIn    string `json:"linkedin_url"`
	PhoneNumber string `json:"phone_number"`
}

// VerifyResult is the parsed email-verifier response.
type VerifyResult struct {
	Status string `json:"status"`
	Score  int    `json:"score"`
	Email  string `json:"email"`
}

// Deliverable reports whether verification concluded the address accepts
// mail.
func (r *VerifyResult) Deliverable() bool {
	return r.Status == "deliverable"
}

// DomainSearchResult is the parsed domain-search response: company facts
// known for the domain plus every published address.
type DomainSearchResult struct {
	Organization string          `json:"organization"`
	Country      string          `json:"country"`
	Industry     string          `json:"industry"`
	Emails       []DomainContact `json:"emails"`
}

// DomainContact is one address from a domain search.
type DomainContact struct {
	Value       string `json:"value"`
	Type        string `json:"type"`
	Confidence  int    `json:"confidence"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Position    string `json:"position"`
	LinkedIn    string `json:"linkedin"`
	PhoneNumber string `json:"phone_number"`
}

// FullName joins the contact's name parts.
func (c DomainContact) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

// Option configures the Hunter client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Hunter.io client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.hunter.io/v2",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503).
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "hunter: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("hunter: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: request failed")
	}

	// Hunter returns 404 with an error body when nothing is known for the
	// query. Callers treat the empty result as a miss.
	if statusCode == http.StatusNotFound {
		return nil, nil
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("hunter: unexpected status %d: %s", statusCode, string(body))
	}
	return body, nil
}

func (c *httpClient) FindEmail(ctx context.Context, domain, fullName string) (*FinderResult, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("full_name", fullName)

	body, err := c.get(ctx, "/email-finder", params)
	if err != nil || body == nil {
		return nil, err
	}

	var envelope struct {
		Data FinderResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal finder response")
	}
	if envelope.Data.Email == "" {
		return nil, nil
	}
	return &envelope.Data, nil
}

func (c *httpClient) VerifyEmail(ctx context.Context, email string) (*VerifyResult, error) {
	params := url.Values{}
	params.Set("email", email)

	body, err := c.get(ctx, "/email-verifier", params)
	if err != nil || body == nil {
		return nil, err
	}

	var envelope struct {
		Data VerifyResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal verifier response")
	}
	return &envelope.Data, nil
}

func (c *httpClient) DomainSearch(ctx context.Context, domain string, limit int) (*DomainSearchResult, error) {
	params := url.Values{}
	params.Set("domain", domain)
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	body, err := c.get(ctx, "/domain-search", params)
	if err != nil || body == nil {
		return nil, err
	}

	var envelope struct {
		Data DomainSearchResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal domain search response")
	}
	return &envelope.Data, nil
}
