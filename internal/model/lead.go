// Package model defines the core lead resolution types shared across the
// pipeline, cascades, scorer, and export sinks.
package model

import "time"

// Platform classifies the e-commerce platform backing a storefront.
type Platform string

const (
	PlatformShopify Platform = "shopify"
	PlatformCustom  Platform = "custom"
	PlatformUnknown Platform = "unknown"
)

// Segment is the business segment a candidate belongs to.
type Segment string

const (
	SegmentEPharmacy  Segment = "e-pharmacy"
	SegmentSunglasses Segment = "sunglasses"
	SegmentEyewear    Segment = "eyewear"
)

// RequiresCategoryValidation reports whether this segment needs a
// product-catalog check before a lead is created.
func (s Segment) RequiresCategoryValidation() bool {
	return s == SegmentEyewear || s == SegmentSunglasses
}

// LeadStatus tracks the lifecycle of a lead after creation.
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusResponded    LeadStatus = "responded"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusDisqualified LeadStatus = "disqualified"
)

// Company holds resolved company attributes. All fields except Name and
// Website are optional and filled incrementally by the cascades.
type Company struct {
	Name          string   `json:"name"`
	Website       string   `json:"website"`
	StorefrontURL string   `json:"storefront_url,omitempty"`
	PrimaryDomain string   `json:"primary_domain,omitempty"`
	Platform      Platform `json:"platform"`
	Industry      string   `json:"industry,omitempty"`
	Segment       Segment  `json:"segment,omitempty"`
	Country       string   `json:"country,omitempty"`
	EmployeeCount int      `json:"employee_count,omitempty"`
	LinkedInURL   string   `json:"linkedin_url,omitempty"`
	Description   string   `json:"description,omitempty"`
	FoundedYear   int      `json:"founded_year,omitempty"`
}

// DecisionMaker is a contact at the company. May be a minimal placeholder
// holding only a generic store-contact email.
type DecisionMaker struct {
	Name          string `json:"name"`
	Title         string `json:"title,omitempty"`
	LinkedInURL   string `json:"linkedin_url,omitempty"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Phone         string `json:"phone,omitempty"`
	Location      string `json:"location,omitempty"`
}

// Qualification is the scored business-fit assessment for a lead.
type Qualification struct {
	Score     int            `json:"score"`
	Qualified bool           `json:"qualified"`
	FitNotes  string         `json:"fit_notes,omitempty"`
	Breakdown map[string]int `json:"scoring_breakdown,omitempty"`
}

// OutreachCopy bundles generated outreach text for a lead.
type OutreachCopy struct {
	ResearchSummary   string `json:"research_summary,omitempty"`
	ConnectionRequest string `json:"connection_request,omitempty"`
	Followup          string `json:"followup,omitempty"`
	EmailSubject      string `json:"email_subject,omitempty"`
	EmailBody         string `json:"email_body,omitempty"`
}

// Lead is the aggregate record for one candidate business.
type Lead struct {
	ID            string         `json:"lead_id"`
	Company       Company        `json:"company"`
	DecisionMaker *DecisionMaker `json:"decision_maker,omitempty"`
	Qualification Qualification  `json:"qualification"`
	Outreach      *OutreachCopy  `json:"outreach,omitempty"`
	Status        LeadStatus     `json:"status"`
	Source        string         `json:"source,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Notes         string         `json:"notes,omitempty"`
}

// StoreInfo is the best-effort data extracted directly from a storefront.
type StoreInfo struct {
	URL         string            `json:"url"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Address     string            `json:"address,omitempty"`
	Country     string            `json:"country,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	RealDomain  string            `json:"real_domain,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// Verification is the outcome of platform detection for a URL.
type Verification struct {
	IsMatch         bool     `json:"is_match"`
	Platform        Platform `json:"platform"`
	ResolvedURL     string   `json:"resolved_url"`
	DetectionMethod string   `json:"detection_method,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// CategoryValidation is the outcome of a product-catalog check.
type CategoryValidation struct {
	IsMatch         bool    `json:"is_match"`
	MatchRatio      float64 `json:"match_ratio"`
	TotalItems      int     `json:"total_items"`
	MatchedItems    int     `json:"matched_items"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
}
