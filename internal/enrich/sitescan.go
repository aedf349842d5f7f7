package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/cascade"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// teamPagePaths are the usual locations of founder and team information.
var teamPagePaths = []string{
	"/pages/about",
	"/pages/about-us",
	"/pages/our-story",
	"/pages/team",
	"/pages/our-team",
	"/pages/meet-the-team",
	"/about",
	"/about-us",
	"/team",
	"/our-story",
}

var (
	jsonLDPattern = regexp.MustCompile(`(?s)<script[^>]*type="application/ld\+json"[^>]*>(.*?)</script>`)

	// "Jane Doe, Founder" and "Jane Doe - CEO" style lines.
	nameTitlePattern = regexp.MustCompile(
		`([A-Z][a-zA-Z'\x60]+(?: [A-Z][a-zA-Z'\x60]+){1,2})\s*[,\x{2013}\x{2014}|-]\s*` +
			`((?i:founder|co-founder|ceo|chief executive[a-z ]*|owner|president|managing director|director|head of [a-z ]+))`)
)

// SiteScan finds decision makers on a company's own pages.
type SiteScan struct {
	http      *http.Client
	userAgent string
}

// NewSiteScan creates a site scanner with its own short-timeout HTTP client.
func NewSiteScan(userAgent string) *SiteScan {
	return &SiteScan{
		http:      &http.Client{Timeout: 20 * time.Second},
		userAgent: userAgent,
	}
}

// FindDecisionMakersFromSite scans the store's about and team pages for
// named people in decision-making roles.
func (s *SiteScan) FindDecisionMakersFromSite(ctx context.Context, rawURL string) ([]model.DecisionMaker, error) {
	base := baseURL(rawURL)
	if base == "" {
		return nil, nil
	}

	var dms []model.DecisionMaker
	for _, path := range teamPagePaths {
		html, err := s.fetchPage(ctx, base+path)
		if err != nil || html == "" {
			continue
		}
		dms = append(dms, peopleFromJSONLD(html)...)
		dms = append(dms, peopleFromText(html)...)
		if len(cascade.DedupDecisionMakers(dms)) >= 3 {
			break
		}
	}

	dms = cascade.DedupDecisionMakers(dms)
	if len(dms) > 0 {
		zap.L().Debug("enrich: decision makers found on site",
			zap.String("url", base), zap.Int("count", len(dms)))
	}
	return dms, nil
}

func (s *SiteScan) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// peopleFromJSONLD extracts Person nodes with a name and job title.
func peopleFromJSONLD(html string) []model.DecisionMaker {
	var dms []model.DecisionMaker
	for _, m := range jsonLDPattern.FindAllStringSubmatch(html, -1) {
		var decoded any
		if err := json.Unmarshal([]byte(m[1]), &decoded); err != nil {
			continue
		}
		collectPersons(decoded, &dms)
	}
	return dms
}

func collectPersons(node any, dms *[]model.DecisionMaker) {
	switch v := node.(type) {
	case map[string]any:
		if t, _ := v["@type"].(string); strings.EqualFold(t, "Person") {
			name, _ := v["name"].(string)
			title, _ := v["jobTitle"].(string)
			if name != "" && isDecisionMakerTitle(title) {
				*dms = append(*dms, model.DecisionMaker{Name: name, Title: title})
			}
		}
		for _, child := range v {
			collectPersons(child, dms)
		}
	case []any:
		for _, child := range v {
			collectPersons(child, dms)
		}
	}
}

// peopleFromText matches "Name, Title" lines in the page's visible text.
func peopleFromText(html string) []model.DecisionMaker {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	if err != nil {
		return nil
	}
	text := doc.Find("body").Text()

	var dms []model.DecisionMaker
	for _, m := range nameTitlePattern.FindAllStringSubmatch(text, 10) {
		dms = append(dms, model.DecisionMaker{
			Name:  strings.TrimSpace(m[1]),
			Title: strings.TrimSpace(m[2]),
		})
	}
	return dms
}

// baseURL reduces a URL to scheme and host.
func baseURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	if i := strings.Index(rest, "/"); i >= 0 {
		s = s[:len(s)-len(rest)+i]
	}
	return s
}
