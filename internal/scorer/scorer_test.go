package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestScore_FullEnrichment(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())
	lead := &model.Lead{
		Company: model.Company{
			Name:          "Nordic Frames",
			Website:       "https://nordicframes.fi",
			EmployeeCount: 30,
			Country:       "FI",
			Description:   "Handmade wooden sunglasses from Helsinki",
			Platform:      model.PlatformShopify,
		},
		DecisionMaker: &model.DecisionMaker{
			Name:          "Jane Doe",
			Title:         "Founder",
			Email:         "jane@nordicframes.fi",
			EmailVerified: true,
		},
	}

	q := s.Score(lead)

	assert.Equal(t, 90, q.Score)
	assert.True(t, q.Qualified)
	assert.Contains(t, q.FitNotes, "Strengths")
	assert.NotContains(t, q.FitNotes, "Gaps")
	assert.Equal(t, 20, q.Breakdown["platform"])
	assert.Equal(t, 15, q.Breakdown["size_sweet_spot"])
	assert.Equal(t, 15, q.Breakdown["geography"])
	assert.Equal(t, 10, q.Breakdown["ecommerce_presence"])
	assert.Equal(t, 15, q.Breakdown["no_disqualifier"])
	assert.Equal(t, 10, q.Breakdown["decision_maker"])
	assert.Equal(t, 5, q.Breakdown["email_verified"])
}

func TestScore_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())

	// Exactly at the threshold qualifies.
	atThreshold := &model.Lead{
		Company: model.Company{
			Name:     "Boundary Shop",
			Platform: model.PlatformShopify,
			Country:  "DE",
		},
	}
	q := s.Score(atThreshold)
	require.Equal(t, 50, q.Score)
	assert.True(t, q.Qualified)

	// One criterion short does not.
	below := &model.Lead{
		Company: model.Company{
			Name:     "Below Shop",
			Website:  "https://belowshop.com",
			Platform: model.PlatformShopify,
		},
	}
	q = s.Score(below)
	require.Equal(t, 45, q.Score)
	assert.False(t, q.Qualified)
	assert.Contains(t, q.FitNotes, "Gaps")
}

func TestScore_ExclusionShortCircuits(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())

	tests := []struct {
		name string
		lead *model.Lead
	}{
		{"by company name", &model.Lead{Company: model.Company{
			Name: "Warby Parker Outlet", Platform: model.PlatformShopify, Country: "US",
		}}},
		{"by domain", &model.Lead{Company: model.Company{
			Name: "Some Shop", PrimaryDomain: "shop.zenni.com", Platform: model.PlatformShopify,
		}}},
		{"by website", &model.Lead{Company: model.Company{
			Name: "Some Shop", Website: "https://www.glassesusa.com", Platform: model.PlatformShopify,
		}}},
		{"case insensitive", &model.Lead{Company: model.Company{
			Name: "FIELMANN Store",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := s.Score(tt.lead)
			assert.Equal(t, 0, q.Score)
			assert.False(t, q.Qualified)
			assert.Contains(t, q.FitNotes, "Excluded")
			assert.Contains(t, q.Breakdown, "excluded")
		})
	}
}

func TestScore_SizeBands(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())

	tests := []struct {
		employees int
		key       string
		points    int
	}{
		{20, "size_sweet_spot", 15},
		{50, "size_sweet_spot", 15},
		{35, "size_sweet_spot", 15},
		{10, "size_good", 10},
		{19, "size_good", 10},
		{200, "size_good", 10},
		{51, "size_good", 10},
	}

	for _, tt := range tests {
		lead := &model.Lead{Company: model.Company{
			Name: "Size Shop", EmployeeCount: tt.employees,
		}}
		q := s.Score(lead)
		assert.Equal(t, tt.points, q.Breakdown[tt.key], "employees=%d", tt.employees)
	}

	// Outside all bands earns nothing.
	q := s.Score(&model.Lead{Company: model.Company{Name: "Huge Corp", EmployeeCount: 5000}})
	assert.NotContains(t, q.Breakdown, "size_sweet_spot")
	assert.NotContains(t, q.Breakdown, "size_good")
}

func TestScore_DisqualifyingKeywords(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())
	lead := &model.Lead{Company: model.Company{
		Name:        "Rx World",
		Description: "We sell prescription glasses and contact lenses",
	}}

	q := s.Score(lead)
	assert.NotContains(t, q.Breakdown, "no_disqualifier")
}

func TestScore_UnverifiedEmailGap(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())
	lead := &model.Lead{
		Company: model.Company{Name: "Frame Shop"},
		DecisionMaker: &model.DecisionMaker{
			Name:  "Jane Doe",
			Email: "jane@frameshop.com",
		},
	}

	q := s.Score(lead)

	require.False(t, q.Qualified)
	assert.Contains(t, q.FitNotes, "email not verified")
	assert.NotContains(t, q.FitNotes, "no contact email")
	assert.NotContains(t, q.Breakdown, "email_verified")
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())
	lead := &model.Lead{Company: model.Company{
		Name: "Stable Shop", Platform: model.PlatformShopify, Country: "US", EmployeeCount: 25,
	}}

	first := s.Score(lead)
	second := s.Score(lead)
	assert.Equal(t, first, second)
}

func TestScore_DoesNotMutateLead(t *testing.T) {
	t.Parallel()

	s := New(DefaultScorerConfig())
	lead := &model.Lead{Company: model.Company{Name: "Shop", Platform: model.PlatformShopify}}
	before := *lead

	s.Score(lead)
	assert.Equal(t, before, *lead)
}

func TestDefaultScorerConfig_WeightsSumTo100(t *testing.T) {
	t.Parallel()

	c := DefaultScorerConfig()
	sum := c.PlatformWeight + c.SizeSweetSpotWeight + c.GeographyWeight +
		c.EcommerceWeight + c.NoDisqualifierWeight + c.DecisionMakerWeight +
		c.EmailVerifiedWeight + c.SizeGoodWeight
	assert.Equal(t, 100, sum)
	require.NoError(t, ValidateConfig(c))
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	t.Run("negative weight", func(t *testing.T) {
		t.Parallel()
		c := DefaultScorerConfig()
		c.PlatformWeight = -1
		err := ValidateConfig(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "platform_weight")
	})

	t.Run("unattainable threshold", func(t *testing.T) {
		t.Parallel()
		c := DefaultScorerConfig()
		c.Threshold = 999
		err := ValidateConfig(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "threshold")
	})

	t.Run("inverted sweet spot", func(t *testing.T) {
		t.Parallel()
		c := DefaultScorerConfig()
		c.SizeSweetSpotMin = 60
		c.SizeSweetSpotMax = 20
		require.Error(t, ValidateConfig(c))
	})

	t.Run("empty target countries", func(t *testing.T) {
		t.Parallel()
		c := DefaultScorerConfig()
		c.TargetCountries = nil
		require.Error(t, ValidateConfig(c))
	})
}
