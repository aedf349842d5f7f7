// Package discovery searches the web for candidate storefront URLs.
package discovery

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/cascade"
	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/apify"
)

// segmentQueries are the search queries tried per segment. The e-pharmacy
// set covers the main European markets in their own languages.
var segmentQueries = map[model.Segment][]string{
	model.SegmentEPharmacy: {
		"online pharmacy shop site:myshopify.com",
		"online pharmacy store",
		"apotheke online shop",
		"pharmacie en ligne boutique",
		"farmacia online tienda",
		"verkkoapteekki",
	},
	model.SegmentSunglasses: {
		"sunglasses brand shop site:myshopify.com",
		"independent sunglasses brand online store",
		"buy designer sunglasses online shop",
	},
	model.SegmentEyewear: {
		"eyewear brand shop site:myshopify.com",
		"independent eyewear brand online store",
		"buy glasses online boutique",
	},
}

// Finder discovers candidate stores through a search actor.
type Finder struct {
	client apify.Client
	cfg    config.ApifyConfig
}

// NewFinder creates a Finder.
func NewFinder(client apify.Client, cfg config.ApifyConfig) *Finder {
	return &Finder{client: client, cfg: cfg}
}

// SearchStores runs the segment's queries and returns up to max unique
// candidate URLs. Aggregator and platform-admin hosts are filtered out;
// duplicates collapse by normalized domain.
func (f *Finder) SearchStores(ctx context.Context, segment model.Segment, max int) ([]string, error) {
	queries, ok := segmentQueries[segment]
	if !ok {
		return nil, eris.Errorf("discovery: unknown segment %q", segment)
	}

	seen := make(map[string]struct{})
	var urls []string

	for _, query := range queries {
		if len(urls) >= max {
			break
		}

		input := map[string]any{
			"queries":          query,
			"maxPagesPerQuery": 1,
			"resultsPerPage":   20,
		}
		items, err := f.client.RunActorSync(ctx, f.cfg.GoogleSearchActor, input)
		if err != nil {
			zap.L().Warn("discovery: search query failed",
				zap.String("query", query), zap.Error(err))
			continue
		}

		for _, item := range items {
			var page struct {
				OrganicResults []struct {
					URL string `json:"url"`
				} `json:"organicResults"`
			}
			if err := json.Unmarshal(item, &page); err != nil {
				continue
			}
			for _, r := range page.OrganicResults {
				if len(urls) >= max {
					break
				}
				domain := cache.Normalize(r.URL)
				if domain == "" || !candidateDomain(domain) {
					continue
				}
				if _, dup := seen[domain]; dup {
					continue
				}
				seen[domain] = struct{}{}
				urls = append(urls, r.URL)
			}
		}
	}

	zap.L().Info("discovery: search complete",
		zap.String("segment", string(segment)),
		zap.Int("candidates", len(urls)))
	return urls, nil
}

// candidateDomain rejects hosts that cannot be a merchant's own store.
// Platform subdomains stay eligible: the pipeline resolves them to the
// merchant's real domain later.
func candidateDomain(domain string) bool {
	if strings.HasSuffix(domain, "myshopify.com") {
		return true
	}
	if strings.Contains(domain, "google.") || strings.Contains(domain, "shopify.com") {
		return false
	}
	return cascade.UsableDomain(domain)
}
