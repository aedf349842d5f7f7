package cascade

import (
	"context"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// CountryDetector detects a storefront's country from page signals.
type CountryDetector interface {
	DetectCountryFromSchema(ctx context.Context, url string) (string, error)
	DetectCountryFromCurrency(ctx context.Context, url string) (string, error)
	DetectCountryFromTLD(url string) string
}

// CompanyLocator resolves a company's country from its registered address.
type CompanyLocator interface {
	CompanyCountry(ctx context.Context, lead *model.Lead) (string, error)
}

// CountrySources builds the country resolution order: structured page markup,
// then currency hints, then the company's registered address, then the TLD.
// A nil locator is skipped.
func CountrySources(detector CountryDetector, locator CompanyLocator) []Source[string] {
	sources := []Source[string]{
		SourceFunc[string]{
			SourceName: "schema_org",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				country, err := detector.DetectCountryFromSchema(ctx, lead.Company.Website)
				return country, country != "", err
			},
		},
		SourceFunc[string]{
			SourceName: "currency",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				country, err := detector.DetectCountryFromCurrency(ctx, lead.Company.Website)
				return country, country != "", err
			},
		},
	}

	if locator != nil {
		sources = append(sources, SourceFunc[string]{
			SourceName: "network_address",
			Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
				country, err := locator.CompanyCountry(ctx, lead)
				return country, country != "", err
			},
		})
	}

	sources = append(sources, SourceFunc[string]{
		SourceName: "tld",
		Fn: func(ctx context.Context, lead *model.Lead) (string, bool, error) {
			country := detector.DetectCountryFromTLD(lead.Company.Website)
			return country, country != "", nil
		},
	})

	return sources
}
