// Package pipeline orchestrates per-candidate lead processing: verification,
// validation, enrichment cascades, scoring, outreach, and cache commit.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/cascade"
	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/enrich"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/storefront"
)

// NetworkEnricher resolves company data through a professional network.
type NetworkEnricher interface {
	FindCompanyURL(ctx context.Context, companyName, siteHint string) (string, error)
	FetchCompanyProfile(ctx context.Context, companyName, companyURL string) (*enrich.CompanyProfile, error)
	FindDecisionMakers(ctx context.Context, lead *model.Lead) ([]model.DecisionMaker, error)
}

// ContactFinder locates and verifies contact addresses, and searches a whole
// domain for published company facts and executives.
type ContactFinder interface {
	FindEmail(ctx context.Context, domain, fullName string) (string, bool, error)
	VerifyEmail(ctx context.Context, email string) (bool, error)
	SearchDomain(ctx context.Context, domain string, limit int) (*enrich.DomainProfile, error)
}

// LeadScorer evaluates a lead's business fit.
type LeadScorer interface {
	Score(lead *model.Lead) model.Qualification
}

// CopyGenerator produces outreach copy for a lead.
type CopyGenerator interface {
	Generate(ctx context.Context, lead *model.Lead) *model.OutreachCopy
}

// StoreSearcher discovers candidate store URLs for a segment.
type StoreSearcher interface {
	SearchStores(ctx context.Context, segment model.Segment, max int) ([]string, error)
}

// Deps bundles the pipeline's collaborators. Nil enrichment collaborators
// disable their stage; Cache, Store, and Scorer are required.
type Deps struct {
	Cache      *cache.Cache
	Store      storefront.Client
	Network    NetworkEnricher
	Site       cascade.SiteScanner
	Contacts   ContactFinder
	Scorer     LeadScorer
	Copywriter CopyGenerator
	Finder     StoreSearcher
	Config     config.PipelineConfig
}

// Options control a single processing run.
type Options struct {
	// Force reprocesses candidates already in the dedup cache.
	Force bool
	// SkipValidation bypasses the product-catalog check.
	SkipValidation bool
	// Segment tags the candidate and selects category validation rules.
	Segment model.Segment
	// Source records where the candidate URL came from.
	Source string
}

// Outcome is the result of processing one candidate.
type Outcome struct {
	Lead    *model.Lead
	Skipped bool
	Reason  string
}

// Pipeline processes candidate URLs one at a time.
type Pipeline struct {
	deps Deps
}

// New creates a Pipeline from its collaborators.
func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// ProcessURL runs one candidate through the full stage machine. Gate stages
// (cache, verification, validation) skip the candidate; everything after the
// gates is best-effort and a lead is always produced and cached.
func (p *Pipeline) ProcessURL(ctx context.Context, rawURL string, opts Options) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("url", rawURL))

	// Gate: dedup cache.
	if !opts.Force {
		if leadID, ok := p.deps.Cache.LeadID(rawURL); ok {
			log.Info("pipeline: skipping cached candidate", zap.String("lead_id", leadID))
			return &Outcome{Skipped: true, Reason: "already processed as lead " + leadID}, nil
		}
	}

	// Gate: platform verification.
	verification := p.deps.Store.Verify(ctx, rawURL)
	if !verification.IsMatch {
		reason := "not on the target platform"
		if verification.Error != "" {
			reason = "verification failed: " + verification.Error
		}
		log.Info("pipeline: candidate rejected", zap.String("reason", reason))
		return &Outcome{Skipped: true, Reason: reason}, nil
	}

	// Gate: product-catalog validation.
	if opts.Segment.RequiresCategoryValidation() && !opts.SkipValidation {
		validation := p.deps.Store.ValidateCategory(ctx, verification.ResolvedURL)
		if !validation.IsMatch {
			log.Info("pipeline: candidate rejected",
				zap.String("reason", validation.RejectionReason),
				zap.Float64("match_ratio", validation.MatchRatio))
			return &Outcome{Skipped: true, Reason: validation.RejectionReason}, nil
		}
	}

	// Store-info extraction is best-effort from here on.
	info, err := p.deps.Store.ExtractStoreInfo(ctx, verification.ResolvedURL)
	if err != nil {
		log.Warn("pipeline: store info extraction failed", zap.Error(err))
		info = &model.StoreInfo{URL: verification.ResolvedURL}
	}

	lead := p.buildLead(verification, info, opts)
	log = log.With(zap.String("lead_id", lead.ID))

	domainProfile := p.searchDomain(ctx, lead, info, log)
	profile := p.enrichFromNetwork(ctx, lead, info, log)
	p.resolvePrimaryDomain(ctx, lead, info, profile)
	p.resolveCountry(ctx, lead, profile)
	p.resolveDecisionMaker(ctx, lead, info, domainProfile, log)
	p.resolveEmail(ctx, lead)

	lead.Qualification = p.deps.Scorer.Score(lead)
	log.Info("pipeline: lead scored",
		zap.Int("score", lead.Qualification.Score),
		zap.Bool("qualified", lead.Qualification.Qualified))

	if p.deps.Copywriter != nil {
		lead.Outreach = p.deps.Copywriter.Generate(ctx, lead)
	}

	lead.UpdatedAt = time.Now().UTC()

	// Commit strictly after all stages so a crash mid-candidate leaves the
	// domain eligible for reprocessing.
	p.deps.Cache.MarkProcessed(rawURL, lead.ID)

	return &Outcome{Lead: lead}, nil
}

// buildLead creates the initial lead record from verification and extraction
// results.
func (p *Pipeline) buildLead(v *model.Verification, info *model.StoreInfo, opts Options) *model.Lead {
	now := time.Now().UTC()
	name := info.Name
	if name == "" {
		name = nameFromDomain(v.ResolvedURL)
	}

	return &model.Lead{
		ID: uuid.NewString()[:8],
		Company: model.Company{
			Name:          name,
			Website:       v.ResolvedURL,
			StorefrontURL: v.ResolvedURL,
			Platform:      v.Platform,
			Segment:       opts.Segment,
			Description:   info.Description,
			Country:       info.Country,
		},
		Status:    model.LeadStatusNew,
		Source:    opts.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// domainSearchLimit bounds how many published addresses one domain search
// may return.
const domainSearchLimit = 10

// searchDomain runs a domain-wide contact search on the merchant's own domain
// and fills still-empty company fields from what is published for it. The
// executive contacts found ride along into the decision-maker cascade.
// Failures are logged and leave the lead untouched.
func (p *Pipeline) searchDomain(ctx context.Context, lead *model.Lead, info *model.StoreInfo, log *zap.Logger) *enrich.DomainProfile {
	if p.deps.Contacts == nil {
		return nil
	}

	domain := cache.Normalize(info.RealDomain)
	if !cascade.UsableDomain(domain) {
		domain = cache.Normalize(lead.Company.Website)
	}
	if !cascade.UsableDomain(domain) {
		return nil
	}

	profile, err := p.deps.Contacts.SearchDomain(ctx, domain, domainSearchLimit)
	if err != nil {
		log.Warn("pipeline: domain search failed", zap.Error(err))
		return nil
	}
	if profile == nil {
		return nil
	}

	cascade.SetIfEmpty(&lead.Company.Name, profile.CompanyName)
	cascade.SetIfEmpty(&lead.Company.Country, profile.Country)
	cascade.SetIfEmpty(&lead.Company.Industry, profile.Industry)
	return profile
}

// enrichFromNetwork fills company fields from a professional-network profile.
// Failures are logged and leave the lead untouched.
func (p *Pipeline) enrichFromNetwork(ctx context.Context, lead *model.Lead, info *model.StoreInfo, log *zap.Logger) *enrich.CompanyProfile {
	if p.deps.Network == nil {
		return nil
	}

	companyURL, err := p.deps.Network.FindCompanyURL(ctx, lead.Company.Name, info.SocialLinks["linkedin"])
	if err != nil {
		log.Warn("pipeline: company profile lookup failed", zap.Error(err))
		return nil
	}
	if companyURL == "" {
		return nil
	}

	profile, err := p.deps.Network.FetchCompanyProfile(ctx, lead.Company.Name, companyURL)
	if err != nil {
		log.Warn("pipeline: company profile scrape failed", zap.Error(err))
		return nil
	}
	enrich.ApplyProfile(lead, profile)
	return profile
}

func (p *Pipeline) resolvePrimaryDomain(ctx context.Context, lead *model.Lead, info *model.StoreInfo, profile *enrich.CompanyProfile) {
	if lead.Company.PrimaryDomain != "" {
		return
	}
	networkWebsite := ""
	if profile != nil {
		networkWebsite = profile.Website
	}
	result := cascade.Resolve(ctx, "primary_domain", lead, cascade.PrimaryDomainSources(info, networkWebsite))
	cascade.SetIfEmpty(&lead.Company.PrimaryDomain, result.Value)
}

func (p *Pipeline) resolveCountry(ctx context.Context, lead *model.Lead, profile *enrich.CompanyProfile) {
	// Store extraction and the domain search may have settled this already.
	if lead.Company.Country != "" {
		return
	}

	var locator cascade.CompanyLocator
	if profile != nil && profile.Country != "" {
		locator = staticLocator(profile.Country)
	}
	result := cascade.Resolve(ctx, "country", lead, cascade.CountrySources(p.deps.Store, locator))
	cascade.SetIfEmpty(&lead.Company.Country, result.Value)
}

func (p *Pipeline) resolveDecisionMaker(ctx context.Context, lead *model.Lead, info *model.StoreInfo, domainProfile *enrich.DomainProfile, log *zap.Logger) {
	var executives []model.DecisionMaker
	if domainProfile != nil {
		executives = domainProfile.DecisionMakers
	}
	sources := cascade.DecisionMakerSources(p.deps.Network, executives, p.deps.Site, info.Email)
	if len(sources) == 0 {
		return
	}

	result := cascade.Resolve(ctx, "decision_maker", lead, sources)
	if !result.Found || len(result.Value) == 0 {
		log.Debug("pipeline: no decision maker found")
		return
	}

	candidates := result.Value
	if max := p.deps.Config.MaxDecisionMakers; max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}
	primary := candidates[0]
	lead.DecisionMaker = &primary
	log.Debug("pipeline: decision maker resolved",
		zap.String("source", result.Winner),
		zap.String("name", primary.Name))
}

func (p *Pipeline) resolveEmail(ctx context.Context, lead *model.Lead) {
	if p.deps.Contacts == nil || lead.DecisionMaker == nil {
		return
	}
	if lead.DecisionMaker.EmailVerified {
		return
	}
	result := cascade.Resolve(ctx, "email", lead, cascade.EmailSources(p.deps.Contacts))
	if result.Found {
		cascade.ApplyEmail(lead, result.Value)
	}
}

// staticLocator serves an already-known country to the country cascade.
type staticLocator string

func (s staticLocator) CompanyCountry(_ context.Context, _ *model.Lead) (string, error) {
	return string(s), nil
}

// nameFromDomain derives a display name from the URL's domain.
func nameFromDomain(rawURL string) string {
	domain := cache.Normalize(rawURL)
	base := domain
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, "-", " ")
	return cases.Title(language.English).String(base)
}
