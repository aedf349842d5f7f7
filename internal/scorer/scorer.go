package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// Scorer evaluates leads against a weighted criterion table.
type Scorer struct {
	cfg config.ScorerConfig
}

// New returns a Scorer using cfg. Callers should run ValidateConfig first.
func New(cfg config.ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates the lead and returns its qualification. The input lead is
// not modified.
func (s *Scorer) Score(lead *model.Lead) model.Qualification {
	if reason, excluded := s.excluded(lead); excluded {
		return model.Qualification{
			Score:     0,
			Qualified: false,
			FitNotes:  fmt.Sprintf("Excluded: %s", reason),
			Breakdown: map[string]int{"excluded": 0},
		}
	}

	breakdown := make(map[string]int)
	var strengths, gaps []string

	if lead.Company.Platform == model.PlatformShopify {
		breakdown["platform"] = s.cfg.PlatformWeight
		strengths = append(strengths, "target platform storefront")
	} else {
		gaps = append(gaps, "not on the target platform")
	}

	switch size := lead.Company.EmployeeCount; {
	case size >= s.cfg.SizeSweetSpotMin && size <= s.cfg.SizeSweetSpotMax:
		breakdown["size_sweet_spot"] = s.cfg.SizeSweetSpotWeight
		strengths = append(strengths, fmt.Sprintf("%d employees, in the sweet spot", size))
	case size >= s.cfg.SizeMin && size <= s.cfg.SizeMax:
		breakdown["size_good"] = s.cfg.SizeGoodWeight
		strengths = append(strengths, fmt.Sprintf("%d employees, workable size", size))
	case size == 0:
		gaps = append(gaps, "employee count unknown")
	default:
		gaps = append(gaps, fmt.Sprintf("%d employees, outside target size", size))
	}

	if s.targetCountry(lead.Company.Country) {
		breakdown["geography"] = s.cfg.GeographyWeight
		strengths = append(strengths, fmt.Sprintf("based in target market (%s)", lead.Company.Country))
	} else if lead.Company.Country == "" {
		gaps = append(gaps, "country unknown")
	} else {
		gaps = append(gaps, fmt.Sprintf("outside target markets (%s)", lead.Company.Country))
	}

	if lead.Company.StorefrontURL != "" || lead.Company.Website != "" {
		breakdown["ecommerce_presence"] = s.cfg.EcommerceWeight
		strengths = append(strengths, "active online storefront")
	}

	if s.hasDisqualifier(lead) {
		gaps = append(gaps, "sells disqualifying product lines")
	} else {
		breakdown["no_disqualifier"] = s.cfg.NoDisqualifierWeight
		strengths = append(strengths, "no disqualifying product lines")
	}

	if dm := lead.DecisionMaker; dm != nil && dm.Name != "" {
		breakdown["decision_maker"] = s.cfg.DecisionMakerWeight
		strengths = append(strengths, fmt.Sprintf("decision maker identified (%s)", dm.Name))
		switch {
		case dm.EmailVerified:
			breakdown["email_verified"] = s.cfg.EmailVerifiedWeight
			strengths = append(strengths, "verified email address")
		case dm.Email == "":
			gaps = append(gaps, "no contact email")
		default:
			gaps = append(gaps, "email not verified")
		}
	} else {
		gaps = append(gaps, "no decision maker identified")
	}

	var total int
	for _, points := range breakdown {
		total += points
	}
	qualified := total >= s.cfg.Threshold

	return model.Qualification{
		Score:     total,
		Qualified: qualified,
		FitNotes:  fitNotes(strengths, gaps, qualified),
		Breakdown: breakdown,
	}
}

// Threshold returns the configured qualification threshold.
func (s *Scorer) Threshold() int { return s.cfg.Threshold }

// excluded reports whether the lead matches a known large competitor or
// retail chain from the exclusion list.
func (s *Scorer) excluded(lead *model.Lead) (string, bool) {
	haystacks := []string{
		strings.ToLower(lead.Company.Name),
		strings.ToLower(lead.Company.PrimaryDomain),
		strings.ToLower(lead.Company.Website),
	}
	for _, needle := range s.cfg.ExclusionList {
		for _, h := range haystacks {
			if h != "" && strings.Contains(h, strings.ToLower(needle)) {
				return fmt.Sprintf("matches excluded company %q", needle), true
			}
		}
	}
	return "", false
}

func (s *Scorer) targetCountry(country string) bool {
	if country == "" {
		return false
	}
	upper := strings.ToUpper(strings.TrimSpace(country))
	for _, target := range s.cfg.TargetCountries {
		if upper == strings.ToUpper(target) {
			return true
		}
	}
	return false
}

func (s *Scorer) hasDisqualifier(lead *model.Lead) bool {
	text := strings.ToLower(lead.Company.Description + " " + lead.Company.Industry)
	for _, kw := range s.cfg.DisqualifyingKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// fitNotes renders strengths always, gaps only for unqualified leads.
func fitNotes(strengths, gaps []string, qualified bool) string {
	var parts []string
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(strengths, "; "))
	}
	if !qualified && len(gaps) > 0 {
		parts = append(parts, "Gaps: "+strings.Join(gaps, "; "))
	}
	return strings.Join(parts, ". ")
}
