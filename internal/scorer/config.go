// Package scorer implements deterministic lead qualification scoring.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/config"
)

// DefaultScorerConfig returns the production scoring configuration. Weights
// sum to 100.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		// Weights (sum = 100).
		PlatformWeight:       20,
		SizeSweetSpotWeight:  15,
		SizeGoodWeight:       10,
		GeographyWeight:      15,
		EcommerceWeight:      10,
		NoDisqualifierWeight: 15,
		DecisionMakerWeight:  10,
		EmailVerifiedWeight:  5,

		// Employee-count bands.
		SizeMin:          10,
		SizeSweetSpotMin: 20,
		SizeSweetSpotMax: 50,
		SizeMax:          200,

		// Threshold.
		Threshold: 50,

		TargetCountries: []string{
			"US", "USA", "UK", "GB", "IE", "DE", "AT", "CH", "FR", "NL",
			"BE", "ES", "IT", "PT", "FI", "SE", "DK", "NO", "CA", "AU",
		},
		ExclusionList: []string{
			"glassesusa", "eyebuydirect", "zenni optical", "zenni",
			"sunglass hut", "lenscrafters", "warby parker", "specsavers",
			"fielmann", "apollo optik",
		},
		DisqualifyingKeywords: []string{
			"prescription", "rx lenses", "optical lenses", "vision care",
		},
	}
}

// MaxScore returns the highest attainable score. SizeGoodWeight is excluded
// because the size criteria are mutually exclusive and the sweet spot
// dominates.
func MaxScore(c config.ScorerConfig) int {
	return c.PlatformWeight + c.SizeSweetSpotWeight + c.GeographyWeight +
		c.EcommerceWeight + c.NoDisqualifierWeight + c.DecisionMakerWeight +
		c.EmailVerifiedWeight
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	// All weights must be non-negative.
	weights := map[string]int{
		"platform_weight":        c.PlatformWeight,
		"size_sweet_spot_weight": c.SizeSweetSpotWeight,
		"size_good_weight":       c.SizeGoodWeight,
		"geography_weight":       c.GeographyWeight,
		"ecommerce_weight":       c.EcommerceWeight,
		"no_disqualifier_weight": c.NoDisqualifierWeight,
		"decision_maker_weight":  c.DecisionMakerWeight,
		"email_verified_weight":  c.EmailVerifiedWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// The threshold must be attainable.
	if c.Threshold <= 0 {
		errs = append(errs, "threshold must be > 0")
	}
	if max := MaxScore(c); c.Threshold > max {
		errs = append(errs, fmt.Sprintf("threshold %d exceeds maximum attainable score %d", c.Threshold, max))
	}

	// Size bands.
	if c.SizeMin < 0 {
		errs = append(errs, "size_min must be >= 0")
	}
	if c.SizeMax > 0 && c.SizeMax < c.SizeMin {
		errs = append(errs, "size_max must be >= size_min")
	}
	if c.SizeSweetSpotMax < c.SizeSweetSpotMin {
		errs = append(errs, "size_sweet_spot_max must be >= size_sweet_spot_min")
	}
	if c.SizeSweetSpotMin < c.SizeMin || c.SizeSweetSpotMax > c.SizeMax {
		errs = append(errs, "size sweet spot must lie within the good-size band")
	}

	if len(c.TargetCountries) == 0 {
		errs = append(errs, "target_countries must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
