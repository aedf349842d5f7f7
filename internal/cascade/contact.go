package cascade

import (
	"context"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// EmployeeSearcher finds decision makers through a professional-network
// employee search.
type EmployeeSearcher interface {
	FindDecisionMakers(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, error)
}

// SiteScanner scrapes decision makers from a company's own pages.
type SiteScanner interface {
	FindDecisionMakersFromSite(ctx context.Context, url string) ([]model.DecisionMaker, error)
}

// maxDecisionMakerCandidates caps how many contacts any single source may
// contribute.
const maxDecisionMakerCandidates = 5

// DecisionMakerSources builds the contact resolution order: network employee
// search, executives already surfaced by the domain search, the company's own
// team pages, and finally a generic store-contact placeholder when only an
// inbox address is known. Nil or empty collaborators are skipped.
func DecisionMakerSources(
	network EmployeeSearcher,
	executives []model.DecisionMaker,
	site SiteScanner,
	storeEmail string,
) []Source[[]model.DecisionMaker] {
	var sources []Source[[]model.DecisionMaker]

	if network != nil {
		sources = append(sources, SourceFunc[[]model.DecisionMaker]{
			SourceName: "network_employees",
			Fn: func(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, bool, error) {
				dms, err := network.FindDecisionMakers(ctx, lead)
				dms = DedupDecisionMakers(dms)
				return dms, len(dms) > 0, err
			},
		})
	}

	if len(executives) > 0 {
		sources = append(sources, SourceFunc[[]model.DecisionMaker]{
			SourceName: "domain_executives",
			Fn: func(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, bool, error) {
				dms := DedupDecisionMakers(executives)
				return dms, len(dms) > 0, nil
			},
		})
	}

	if site != nil {
		sources = append(sources, SourceFunc[[]model.DecisionMaker]{
			SourceName: "site_scan",
			Fn: func(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, bool, error) {
				dms, err := site.FindDecisionMakersFromSite(ctx, lead.Company.Website)
				dms = DedupDecisionMakers(dms)
				return dms, len(dms) > 0, err
			},
		})
	}

	if storeEmail != "" {
		sources = append(sources, SourceFunc[[]model.DecisionMaker]{
			SourceName: "store_contact",
			Fn: func(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, bool, error) {
				dm := model.DecisionMaker{Name: "Store Contact", Email: storeEmail}
				return []model.DecisionMaker{dm}, true, nil
			},
		})
	}

	return sources
}

// DedupDecisionMakers drops duplicate contacts by normalized name, keeping
// first occurrences, and caps the result at maxDecisionMakerCandidates.
func DedupDecisionMakers(dms []model.DecisionMaker) []model.DecisionMaker {
	seen := make(map[string]struct{}, len(dms))
	out := make([]model.DecisionMaker, 0, len(dms))
	for _, dm := range dms {
		key := normalizeName(dm.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, dm)
		if len(out) == maxDecisionMakerCandidates {
			break
		}
	}
	return out
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
