// Package enrich fills lead fields from professional-network data and from
// the company's own pages.
package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/cascade"
	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/apify"
	"github.com/sells-group/leadgen-cli/pkg/storefront"
)

// decisionMakerTitles mark a position as a buying-decision role.
var decisionMakerTitles = []string{
	"founder", "co-founder", "ceo", "chief executive", "owner",
	"president", "managing director", "director", "head of",
}

// CompanyProfile is the normalized result of a company-profile scrape.
type CompanyProfile struct {
	Name          string
	Website       string
	Industry      string
	Description   string
	EmployeeCount int
	FoundedYear   int
	Country       string
	LinkedInURL   string
}

// Network enriches leads through professional-network scraping actors.
type Network struct {
	client apify.Client
	cfg    config.ApifyConfig
}

// NewNetwork creates a Network enricher backed by the actor platform.
func NewNetwork(client apify.Client, cfg config.ApifyConfig) *Network {
	return &Network{client: client, cfg: cfg}
}

// FindCompanyURL resolves the company's profile URL. A profile link scraped
// from the store's own pages wins; otherwise a web search is tried.
func (n *Network) FindCompanyURL(ctx context.Context, companyName, siteHint string) (string, error) {
	if strings.Contains(siteHint, "linkedin.com/company") {
		return cleanProfileURL(siteHint), nil
	}
	if companyName == "" {
		return "", nil
	}

	input := map[string]any{
		"queries":          companyName + " site:linkedin.com/company",
		"maxPagesPerQuery": 1,
		"resultsPerPage":   5,
	}
	items, err := n.client.RunActorSync(ctx, n.cfg.GoogleSearchActor, input)
	if err != nil {
		return "", eris.Wrap(err, "enrich: company profile search")
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
			if strings.Contains(r.URL, "linkedin.com/company") {
				return cleanProfileURL(r.URL), nil
			}
		}
	}
	return "", nil
}

// FetchCompanyProfile scrapes the company profile and returns its normalized
// fields. A profile whose name does not resemble the company's is discarded.
func (n *Network) FetchCompanyProfile(ctx context.Context, companyName, companyURL string) (*CompanyProfile, error) {
	input := map[string]any{
		"profileUrls": []string{companyURL},
	}
	items, err := n.client.RunActorSync(ctx, n.cfg.CompanyActor, input)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: company profile scrape")
	}
	if len(items) == 0 {
		return nil, nil
	}

	var raw struct {
		CompanyName   string `json:"companyName"`
		Name          string `json:"name"`
		Website       string `json:"website"`
		Industry      string `json:"industry"`
		Description   string `json:"description"`
		EmployeeCount int    `json:"employeeCount"`
		Founded       int    `json:"founded"`
		Headquarters  string `json:"headquarters"`
		MainAddress   string `json:"mainAddress"`
		URL           string `json:"url"`
	}
	if err := json.Unmarshal(items[0], &raw); err != nil {
		return nil, eris.Wrap(err, "enrich: unmarshal company profile")
	}

	profile := &CompanyProfile{
		Name:          firstNonEmpty(raw.CompanyName, raw.Name),
		Website:       raw.Website,
		Industry:      raw.Industry,
		Description:   raw.Description,
		EmployeeCount: raw.EmployeeCount,
		FoundedYear:   raw.Founded,
		Country:       countryFromAddress(firstNonEmpty(raw.Headquarters, raw.MainAddress)),
		LinkedInURL:   firstNonEmpty(raw.URL, companyURL),
	}

	if !namesMatch(companyName, profile.Name) {
		zap.L().Debug("enrich: discarding profile with mismatched name",
			zap.String("company", companyName),
			zap.String("profile", profile.Name))
		return nil, nil
	}
	return profile, nil
}

// ApplyProfile copies profile fields onto the lead's company without
// overwriting anything already resolved. Country is left to the country
// cascade.
func ApplyProfile(lead *model.Lead, profile *CompanyProfile) {
	if profile == nil {
		return
	}
	cascade.SetIfEmpty(&lead.Company.LinkedInURL, profile.LinkedInURL)
	cascade.SetIfEmpty(&lead.Company.Industry, profile.Industry)
	cascade.SetIfEmpty(&lead.Company.Description, profile.Description)
	cascade.SetIfZero(&lead.Company.EmployeeCount, profile.EmployeeCount)
	cascade.SetIfZero(&lead.Company.FoundedYear, profile.FoundedYear)
}

// FindDecisionMakers searches the company's listed employees for
// decision-making roles. Requires the company profile URL to be resolved.
func (n *Network) FindDecisionMakers(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, error) {
	if lead.Company.LinkedInURL == "" {
		return nil, nil
	}

	input := map[string]any{
		"companyUrl": lead.Company.LinkedInURL,
		"maxItems":   25,
	}
	items, err := n.client.RunActorSync(ctx, n.cfg.EmployeesActor, input)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: employee search")
	}

	var dms []model.DecisionMaker
	for _, item := range items {
		var raw struct {
			FullName   string `json:"fullName"`
			Name       string `json:"name"`
			Position   string `json:"position"`
			Title      string `json:"title"`
			ProfileURL string `json:"profileUrl"`
			Location   string `json:"location"`
		}
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}

		name := firstNonEmpty(raw.FullName, raw.Name)
		title := firstNonEmpty(raw.Position, raw.Title)
		if name == "" || !isDecisionMakerTitle(title) {
			continue
		}
		dms = append(dms, model.DecisionMaker{
			Name:        name,
			Title:       title,
			LinkedInURL: raw.ProfileURL,
			Location:    raw.Location,
		})
	}
	return dms, nil
}

// isDecisionMakerTitle reports whether the title names a buying-decision
// role.
func isDecisionMakerTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range decisionMakerTitles {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// namesMatch compares names loosely: one normalized name containing the
// other counts as a match. An empty profile name never matches.
func namesMatch(company, profile string) bool {
	a := normalizeCompanyName(company)
	b := normalizeCompanyName(profile)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeCompanyName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range []string{" gmbh", " ltd", " llc", " inc", " bv", " oy", " ab", " sas", " sa"} {
		lower = strings.TrimSuffix(lower, suffix)
	}
	return strings.Join(strings.Fields(lower), " ")
}

// countryFromAddress takes the last comma-separated segment of an address
// line as the country.
func countryFromAddress(address string) string {
	if address == "" {
		return ""
	}
	parts := strings.Split(address, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return ""
	}
	return storefront.NormalizeCountry(last)
}

func cleanProfileURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
