package storefront

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// emailExclusions filter out placeholder and infrastructure addresses that
// appear in page markup.
var emailExclusions = []string{
	"example", "email", "your", "shopify", "sentry", "test", "noreply",
}

// contactPagePaths are tried in order when the landing page exposes no email.
var contactPagePaths = []string{
	"/pages/contact",
	"/pages/contact-us",
	"/contact",
	"/contact-us",
}

// socialHosts maps a recognizable host fragment to the social-link key.
var socialHosts = map[string]string{
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"tiktok.com":    "tiktok",
	"youtube.com":   "youtube",
	"linkedin.com":  "linkedin",
	"pinterest.com": "pinterest",
}

// ExtractStoreInfo scrapes the landing page for the store's name,
// description, contact data, social links, and canonical domain hint. Missing
// fields stay empty; only a failed page fetch is an error.
func (c *httpClient) ExtractStoreInfo(ctx context.Context, rawURL string) (*model.StoreInfo, error) {
	resolved := normalizeCandidateURL(rawURL)

	body, status, err := c.fetch(ctx, resolved)
	if err != nil {
		return nil, eris.Wrap(err, "storefront: fetch store page")
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("storefront: status %d fetching %s", status, resolved)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "storefront: parse store page")
	}

	info := &model.StoreInfo{
		URL:         resolved,
		SocialLinks: make(map[string]string),
	}

	info.Name = firstNonEmpty(
		doc.Find(`meta[property="og:site_name"]`).AttrOr("content", ""),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	info.Description = firstNonEmpty(
		doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		doc.Find(`meta[property="og:description"]`).AttrOr("content", ""),
	)

	html := string(body)
	info.Email = firstValidEmail(html)
	info.Currency = currencyFromHTML(html)
	info.Country = countryFromPage(html)

	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		phone := strings.TrimPrefix(s.AttrOr("href", ""), "tel:")
		info.Phone = strings.TrimSpace(phone)
		return info.Phone == ""
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		for fragment, key := range socialHosts {
			if strings.Contains(href, fragment) {
				if _, ok := info.SocialLinks[key]; !ok {
					info.SocialLinks[key] = href
				}
			}
		}
	})

	info.RealDomain = canonicalDomainHint(doc, resolved)

	if addr := findStreetAddress(html); addr != "" {
		info.Address = addr
	}

	if info.Email == "" {
		if email, err := c.contactPageEmail(ctx, resolved); err == nil {
			info.Email = email
		} else {
			zap.L().Debug("storefront: contact page scan failed",
				zap.String("url", resolved), zap.Error(err))
		}
	}

	return info, nil
}

// ContactEmail returns the first plausible contact address from the landing
// page or a contact page.
func (c *httpClient) ContactEmail(ctx context.Context, rawURL string) (string, error) {
	resolved := normalizeCandidateURL(rawURL)

	body, status, err := c.fetch(ctx, resolved)
	if err != nil {
		return "", eris.Wrap(err, "storefront: fetch store page")
	}
	if status == http.StatusOK {
		if email := firstValidEmail(string(body)); email != "" {
			return email, nil
		}
	}
	return c.contactPageEmail(ctx, resolved)
}

// contactPageEmail scans the usual contact-page paths for an address.
func (c *httpClient) contactPageEmail(ctx context.Context, resolved string) (string, error) {
	base := strings.TrimSuffix(productsURL(resolved), "/products.json")
	for _, path := range contactPagePaths {
		body, status, err := c.fetch(ctx, base+path)
		if err != nil || status != http.StatusOK {
			continue
		}
		if email := firstValidEmail(string(body)); email != "" {
			return email, nil
		}
	}
	return "", nil
}

// firstValidEmail extracts the first address that passes the exclusion
// filters.
func firstValidEmail(html string) string {
	for _, candidate := range emailPattern.FindAllString(html, 20) {
		lower := strings.ToLower(candidate)
		if strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") ||
			strings.HasSuffix(lower, ".webp") || strings.HasSuffix(lower, ".svg") {
			continue
		}
		excluded := false
		for _, fragment := range emailExclusions {
			if strings.Contains(lower, fragment) {
				excluded = true
				break
			}
		}
		if !excluded {
			return candidate
		}
	}
	return ""
}

// canonicalDomainHint returns the canonical host when it differs from the
// fetched host, pointing platform subdomains at the merchant's own domain.
func canonicalDomainHint(doc *goquery.Document, resolved string) string {
	canonical := firstNonEmpty(
		doc.Find(`link[rel="canonical"]`).AttrOr("href", ""),
		doc.Find(`meta[property="og:url"]`).AttrOr("content", ""),
	)
	if canonical == "" {
		return ""
	}

	canonicalHost := hostOf(canonical)
	if canonicalHost == "" || canonicalHost == hostOf(resolved) {
		return ""
	}
	return canonicalHost
}

func hostOf(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
