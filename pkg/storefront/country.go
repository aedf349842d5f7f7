package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	jsonLDPattern = regexp.MustCompile(`(?s)<script[^>]*type="application/ld\+json"[^>]*>(.*?)</script>`)

	// Shopify exposes the active currency in an inline script.
	currencyActivePattern = regexp.MustCompile(`Shopify\.currency\s*=\s*\{[^}]*"active"\s*:\s*"([A-Z]{3})"`)
	currencyFieldPattern  = regexp.MustCompile(`"currency"\s*:\s*"([A-Z]{3})"`)
)

// currencyCountry maps unambiguous currencies to a country code. EUR is
// omitted: it identifies a region, not a country.
var currencyCountry = map[string]string{
	"USD": "US",
	"GBP": "GB",
	"CAD": "CA",
	"AUD": "AU",
	"NZD": "NZ",
	"CHF": "CH",
	"SEK": "SE",
	"DKK": "DK",
	"NOK": "NO",
	"PLN": "PL",
	"JPY": "JP",
}

// tldCountry maps country-code TLDs to country codes.
var tldCountry = map[string]string{
	"us": "US", "uk": "GB", "ie": "IE", "de": "DE", "at": "AT",
	"ch": "CH", "fr": "FR", "nl": "NL", "be": "BE", "es": "ES",
	"it": "IT", "pt": "PT", "fi": "FI", "se": "SE", "dk": "DK",
	"no": "NO", "ca": "CA", "au": "AU", "nz": "NZ", "pl": "PL",
}

// DetectCountryFromSchema fetches the page and walks its JSON-LD blocks for
// an addressCountry value.
func (c *httpClient) DetectCountryFromSchema(ctx context.Context, rawURL string) (string, error) {
	html, err := c.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}

	for _, block := range jsonLDBlocks(html) {
		if country := findJSONValue(block, "addressCountry"); country != "" {
			return NormalizeCountry(country), nil
		}
	}
	return "", nil
}

// DetectCountryFromCurrency fetches the page and maps the store currency to
// a country.
func (c *httpClient) DetectCountryFromCurrency(ctx context.Context, rawURL string) (string, error) {
	html, err := c.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return currencyCountry[currencyFromHTML(html)], nil
}

// DetectCountryFromTLD maps the domain's TLD to a country. Generic TLDs
// yield no answer.
func (c *httpClient) DetectCountryFromTLD(rawURL string) string {
	host := hostOf(normalizeCandidateURL(rawURL))
	if host == "" {
		return ""
	}
	labels := strings.Split(host, ".")
	return tldCountry[labels[len(labels)-1]]
}

func (c *httpClient) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	resolved := normalizeCandidateURL(rawURL)
	body, status, err := c.fetch(ctx, resolved)
	if err != nil {
		return "", eris.Wrap(err, "storefront: fetch store page")
	}
	if status != http.StatusOK {
		return "", eris.Errorf("storefront: status %d fetching %s", status, resolved)
	}
	return string(body), nil
}

// countryFromPage resolves a country from already-fetched page markup,
// preferring the structured addressCountry over the currency hint.
func countryFromPage(html string) string {
	for _, block := range jsonLDBlocks(html) {
		if country := findJSONValue(block, "addressCountry"); country != "" {
			return NormalizeCountry(country)
		}
	}
	return currencyCountry[currencyFromHTML(html)]
}

func currencyFromHTML(html string) string {
	if m := currencyActivePattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := currencyFieldPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

func jsonLDBlocks(html string) []json.RawMessage {
	var blocks []json.RawMessage
	for _, m := range jsonLDPattern.FindAllStringSubmatch(html, -1) {
		blocks = append(blocks, json.RawMessage(m[1]))
	}
	return blocks
}

// findJSONValue recursively searches decoded JSON for the first string value
// under key. Object values fall back to their name field, matching how
// schema.org Country nodes are written.
func findJSONValue(raw json.RawMessage, key string) string {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ""
	}
	return searchJSON(decoded, key)
}

func searchJSON(node any, key string) string {
	switch v := node.(type) {
	case map[string]any:
		if val, ok := v[key]; ok {
			switch typed := val.(type) {
			case string:
				return typed
			case map[string]any:
				if name, ok := typed["name"].(string); ok {
					return name
				}
			}
		}
		for _, child := range v {
			if found := searchJSON(child, key); found != "" {
				return found
			}
		}
	case []any:
		for _, child := range v {
			if found := searchJSON(child, key); found != "" {
				return found
			}
		}
	}
	return ""
}

// findStreetAddress pulls a street address out of JSON-LD markup.
func findStreetAddress(html string) string {
	for _, block := range jsonLDBlocks(html) {
		if addr := findJSONValue(block, "streetAddress"); addr != "" {
			return strings.TrimSpace(addr)
		}
	}
	return ""
}

// NormalizeCountry upper-cases two-letter codes and maps a handful of common
// long-form names; anything else passes through as written.
func NormalizeCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	switch strings.ToLower(trimmed) {
	case "united states", "united states of america":
		return "US"
	case "united kingdom", "great britain":
		return "GB"
	case "germany", "deutschland":
		return "DE"
	case "france":
		return "FR"
	case "netherlands":
		return "NL"
	case "spain":
		return "ES"
	case "italy":
		return "IT"
	case "finland":
		return "FI"
	case "sweden":
		return "SE"
	case "denmark":
		return "DK"
	case "norway":
		return "NO"
	case "ireland":
		return "IE"
	case "austria":
		return "AT"
	case "switzerland":
		return "CH"
	case "canada":
		return "CA"
	case "australia":
		return "AU"
	}
	return trimmed
}
