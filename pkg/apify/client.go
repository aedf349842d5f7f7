// Package apify provides a client for running Apify actors synchronously.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the actor-platform operations.
type Client interface {
	// RunActorSync starts an actor run, waits for it to finish, and returns
	// the items from its default dataset.
	RunActorSync(ctx context.Context, actorID string, input any) ([]json.RawMessage, error)
}

// Option configures the Apify client.
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
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Apify client. Actor runs can take minutes, so the
// default timeout is generous.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: "https://api.apify.com/v2",
		http: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
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

func (c *httpClient) RunActorSync(ctx context.Context, actorID string, input any) ([]json.RawMessage, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, eris.Wrap(err, "apify: marshal actor input")
	}

	params := url.Values{}
	params.Set("token", c.token)
	reqURL := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?%s",
		c.baseURL, url.PathEscape(actorID), params.Encode())

	body, statusCode, err := c.retryDo(ctx, reqURL, payload)
	if err != nil {
		return nil, eris.Wrapf(err, "apify: run actor %s", actorID)
	}

	// 201 is the documented success status for run-sync endpoints.
	if statusCode != http.StatusOK && statusCode != http.StatusCreated {
		return nil, eris.Errorf("apify: actor %s: unexpected status %d: %s",
			actorID, statusCode, string(body))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, eris.Wrapf(err, "apify: actor %s: unmarshal dataset items", actorID)
	}
	return items, nil
}

// retryDo posts the payload with exponential backoff retries on transient
// failures (429, 500, 502, 503).
func (c *httpClient) retryDo(ctx context.Context, reqURL string, payload []byte) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 2 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if err != nil {
			return nil, 0, eris.Wrap(err, "apify: create request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
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
			return nil, resp.StatusCode, eris.Wrap(readErr, "apify: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("apify: status %d: %s", resp.StatusCode, string(body))
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
