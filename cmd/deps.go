package main

import (
	"time"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/discovery"
	"github.com/sells-group/leadgen-cli/internal/enrich"
	"github.com/sells-group/leadgen-cli/internal/outreach"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/scorer"
	"github.com/sells-group/leadgen-cli/pkg/apify"
	"github.com/sells-group/leadgen-cli/pkg/hunter"
	"github.com/sells-group/leadgen-cli/pkg/storefront"
)

// newStorefrontClient builds the storefront client from config.
func newStorefrontClient() storefront.Client {
	return storefront.NewClient(
		storefront.WithUserAgent(cfg.Storefront.UserAgent),
		storefront.WithTimeout(time.Duration(cfg.Storefront.TimeoutSecs)*time.Second),
		storefront.WithMinCategoryRatio(cfg.Storefront.MinCategoryRatio),
		storefront.WithCategoryKeywords(cfg.Storefront.CategoryKeywords, cfg.Storefront.NegativeKeywords),
	)
}

// buildPipeline wires the full pipeline with all collaborators.
func buildPipeline() (*pipeline.Pipeline, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	apifyClient := apify.NewClient(cfg.Apify.Token, apify.WithBaseURL(cfg.Apify.BaseURL))
	hunterClient := hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))

	deps := pipeline.Deps{
		Cache:      cache.New(cfg.Cache.Path),
		Store:      newStorefrontClient(),
		Network:    enrich.NewNetwork(apifyClient, cfg.Apify),
		Site:       enrich.NewSiteScan(cfg.Storefront.UserAgent),
		Contacts:   enrich.NewContacts(hunterClient),
		Scorer:     scorer.New(cfg.Scorer),
		Copywriter: outreach.NewCopywriter(cfg.Anthropic),
		Finder:     discovery.NewFinder(apifyClient, cfg.Apify),
		Config:     cfg.Pipeline,
	}
	return pipeline.New(deps), nil
}
