package cascade

import (
	"context"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// aggregatorDomains are hosting-platform and link-aggregator domains that
// never identify the merchant itself.
var aggregatorDomains = []string{
	"myshopify.com",
	"linkedin.com",
	"linktr.ee",
	"linktree.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"tiktok.com",
	"bit.ly",
	"goo.gl",
}

// UsableDomain reports whether domain can serve as a company's primary
// domain: non-empty and not an aggregator or hosting-platform host.
func UsableDomain(domain string) bool {
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	lower := strings.ToLower(domain)
	for _, blocked := range aggregatorDomains {
		if strings.Contains(lower, blocked) {
			return false
		}
	}
	return true
}

// PrimaryDomainSources builds the primary-domain resolution order: the
// storefront's canonical-link hint, then the website discovered via network
// enrichment, then the candidate URL itself when it is not a platform
// subdomain.
func PrimaryDomainSources(info *model.StoreInfo, networkWebsite string) []Source[string] {
	return []Source[string]{
		SourceFunc[string]{
			SourceName: "canonical_hint",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				if info == nil {
					return "", false, nil
				}
				domain := cache.Normalize(info.RealDomain)
				return domain, UsableDomain(domain), nil
			},
		},
		SourceFunc[string]{
			SourceName: "network_website",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				domain := cache.Normalize(networkWebsite)
				return domain, UsableDomain(domain), nil
			},
		},
		SourceFunc[string]{
			SourceName: "candidate_url",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				domain := cache.Normalize(lead.Company.Website)
				return domain, UsableDomain(domain), nil
			},
		},
	}
}
