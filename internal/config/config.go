// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Hunter     HunterConfig     `yaml:"hunter" mapstructure:"hunter"`
	Apify      ApifyConfig      `yaml:"apify" mapstructure:"apify"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Storefront StorefrontConfig `yaml:"storefront" mapstructure:"storefront"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Scorer     ScorerConfig     `yaml:"scorer" mapstructure:"scorer"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// HunterConfig holds contact-verification API settings.
type HunterConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ApifyConfig holds actor-platform credentials and actor IDs.
type ApifyConfig struct {
	Token             string `yaml:"token" mapstructure:"token"`
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
	GoogleSearchActor string `yaml:"google_search_actor" mapstructure:"google_search_actor"`
	CompanyActor      string `yaml:"company_actor" mapstructure:"company_actor"`
	EmployeesActor    string `yaml:"employees_actor" mapstructure:"employees_actor"`
}

// AnthropicConfig holds outreach-generation model settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// StorefrontConfig configures platform verification and catalog validation.
type StorefrontConfig struct {
	TimeoutSecs      int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent        string   `yaml:"user_agent" mapstructure:"user_agent"`
	MinCategoryRatio float64  `yaml:"min_category_ratio" mapstructure:"min_category_ratio"`
	CategoryKeywords []string `yaml:"category_keywords" mapstructure:"category_keywords"`
	NegativeKeywords []string `yaml:"negative_keywords" mapstructure:"negative_keywords"`
}

// CacheConfig configures the dedup cache backing store.
type CacheConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ExportConfig configures the spreadsheet and JSON output sinks.
type ExportConfig struct {
	WorkbookPath string `yaml:"workbook_path" mapstructure:"workbook_path"`
	OutputDir    string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ScorerConfig holds qualification weights, thresholds, and filter lists.
type ScorerConfig struct {
	PlatformWeight       int `yaml:"platform_weight" mapstructure:"platform_weight"`
	SizeSweetSpotWeight  int `yaml:"size_sweet_spot_weight" mapstructure:"size_sweet_spot_weight"`
	SizeGoodWeight       int `yaml:"size_good_weight" mapstructure:"size_good_weight"`
	GeographyWeight      int `yaml:"geography_weight" mapstructure:"geography_weight"`
	EcommerceWeight      int `yaml:"ecommerce_weight" mapstructure:"ecommerce_weight"`
	NoDisqualifierWeight int `yaml:"no_disqualifier_weight" mapstructure:"no_disqualifier_weight"`
	DecisionMakerWeight  int `yaml:"decision_maker_weight" mapstructure:"decision_maker_weight"`
	EmailVerifiedWeight  int `yaml:"email_verified_weight" mapstructure:"email_verified_weight"`

	SizeMin          int `yaml:"size_min" mapstructure:"size_min"`
	SizeSweetSpotMin int `yaml:"size_sweet_spot_min" mapstructure:"size_sweet_spot_min"`
	SizeSweetSpotMax int `yaml:"size_sweet_spot_max" mapstructure:"size_sweet_spot_max"`
	SizeMax          int `yaml:"size_max" mapstructure:"size_max"`

	Threshold             int      `yaml:"threshold" mapstructure:"threshold"`
	TargetCountries       []string `yaml:"target_countries" mapstructure:"target_countries"`
	ExclusionList         []string `yaml:"exclusion_list" mapstructure:"exclusion_list"`
	DisqualifyingKeywords []string `yaml:"disqualifying_keywords" mapstructure:"disqualifying_keywords"`
}

// PipelineConfig configures orchestrator behavior.
type PipelineConfig struct {
	MaxDecisionMakers int    `yaml:"max_decision_makers" mapstructure:"max_decision_makers"`
	SamplesFile       string `yaml:"samples_file" mapstructure:"samples_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credentials default to empty so env-only values are visible
	// to Unmarshal.
	v.SetDefault("hunter.key", "")
	v.SetDefault("apify.token", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("apify.base_url", "https://api.apify.com/v2")
	v.SetDefault("apify.google_search_actor", "apify~google-search-scraper")
	v.SetDefault("apify.company_actor", "logical_scrapers~linkedin-company-scraper")
	v.SetDefault("apify.employees_actor", "caprolok~linkedin-employees-scraper")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("storefront.timeout_secs", 60)
	v.SetDefault("storefront.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("storefront.min_category_ratio", 0.30)
	v.SetDefault("storefront.category_keywords", defaultCategoryKeywords)
	v.SetDefault("storefront.negative_keywords", defaultNegativeKeywords)
	v.SetDefault("cache.path", "data/processed_domains.json")
	v.SetDefault("export.workbook_path", "data/output/leads.xlsx")
	v.SetDefault("export.output_dir", "data/output")
	v.SetDefault("pipeline.max_decision_makers", 3)
	v.SetDefault("pipeline.samples_file", "config/samples.yaml")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ValidateCredentials fails fast when required collaborator credentials are
// missing. Every enrichment call would otherwise fail uniformly mid-run.
func (c *Config) ValidateCredentials() error {
	var missing []string
	if c.Hunter.Key == "" {
		missing = append(missing, "hunter.key")
	}
	if c.Apify.Token == "" {
		missing = append(missing, "apify.token")
	}
	if c.Anthropic.Key == "" {
		missing = append(missing, "anthropic.key")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

var defaultCategoryKeywords = []string{
	"glasses", "eyeglasses", "sunglasses", "eyewear", "optical", "frames",
	"lenses", "prescription", "reading glasses", "blue light", "spectacles",
	"rx", "vision", "aviator", "wayfarer", "polarized",
}

var defaultNegativeKeywords = []string{
	"picture frame", "photo frame", "wine glass", "drinking glass",
	"window glass", "art frame", "poster frame", "mirror frame",
	"glassware", "stemware",
}
