package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// platformIndicators are HTML markers that identify the target platform even
// when the products endpoint is blocked.
var platformIndicators = []string{
	"cdn.shopify.com",
	"shopify.com/s/",
	"Shopify.theme",
	"shopify-section",
	`name="shopify-`,
	"window.Shopify",
}

// Verify detects the platform behind a candidate URL. Network failures are
// reported through the Error field, never as a returned error: an unreachable
// site is a non-match, not a pipeline fault.
func (c *httpClient) Verify(ctx context.Context, rawURL string) *model.Verification {
	resolved := normalizeCandidateURL(rawURL)
	v := &model.Verification{
		ResolvedURL: resolved,
		Platform:    model.PlatformUnknown,
	}
	if resolved == "" {
		v.Error = "empty URL"
		return v
	}

	// The products endpoint is the cheapest definitive signal.
	if body, status, err := c.fetch(ctx, productsURL(resolved)); err == nil && status == http.StatusOK {
		var doc struct {
			Products []json.RawMessage `json:"products"`
		}
		if json.Unmarshal(body, &doc) == nil && doc.Products != nil {
			v.IsMatch = true
			v.Platform = model.PlatformShopify
			v.DetectionMethod = "products_endpoint"
			return v
		}
	}

	body, status, err := c.fetch(ctx, resolved)
	if err != nil {
		v.Error = err.Error()
		return v
	}
	if status != http.StatusOK {
		v.Error = fmt.Sprintf("status %d fetching store page", status)
		return v
	}

	html := string(body)
	for _, indicator := range platformIndicators {
		if strings.Contains(html, indicator) {
			v.IsMatch = true
			v.Platform = model.PlatformShopify
			v.DetectionMethod = "html_indicator"
			return v
		}
	}

	v.Platform = model.PlatformCustom
	v.DetectionMethod = "html_scan"
	return v
}

// productsURL builds the catalog endpoint for a storefront URL, dropping any
// path so collection URLs still hit the root catalog.
func productsURL(resolved string) string {
	base := resolved
	rest := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	if i := strings.Index(rest, "/"); i >= 0 {
		base = base[:len(base)-len(rest)+i]
	}
	return base + "/products.json"
}
