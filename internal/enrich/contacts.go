package enrich

import (
	"context"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/hunter"
)

// verifiedConfidence is the minimum published-source confidence at which an
// address counts as verified without a deliverability check.
const verifiedConfidence = 80

// executiveKeywords mark a published position as executive-level.
var executiveKeywords = []string{
	"ceo", "founder", "owner", "director", "president", "chief", "head",
}

// Contacts adapts the contact-verification API to the resolution cascades.
type Contacts struct {
	client hunter.Client
}

// NewContacts creates a Contacts adapter.
func NewContacts(client hunter.Client) *Contacts {
	return &Contacts{client: client}
}

// FindEmail locates an address for a person at a domain. The verified flag
// reflects the finder's confidence score.
func (c *Contacts) FindEmail(ctx context.Context, domain, fullName string) (string, bool, error) {
	result, err := c.client.FindEmail(ctx, domain, fullName)
	if err != nil || result == nil {
		return "", false, err
	}
	return result.Email, result.Score > verifiedConfidence, nil
}

// VerifyEmail checks deliverability of an address.
func (c *Contacts) VerifyEmail(ctx context.Context, email string) (bool, error) {
	result, err := c.client.VerifyEmail(ctx, email)
	if err != nil || result == nil {
		return false, err
	}
	return result.Deliverable(), nil
}

// DomainProfile aggregates what a domain-wide contact search knows about a
// company: registered facts plus executive-level contacts.
type DomainProfile struct {
	CompanyName    string
	Country        string
	Industry       string
	DecisionMakers []model.DecisionMaker
}

// SearchDomain runs a domain-wide contact search. Contacts with an
// executive-sounding position become decision-maker candidates; a nil result
// means nothing is published for the domain.
func (c *Contacts) SearchDomain(ctx context.Context, domain string, limit int) (*DomainProfile, error) {
	result, err := c.client.DomainSearch(ctx, domain, limit)
	if err != nil || result == nil {
		return nil, err
	}

	profile := &DomainProfile{
		CompanyName: result.Organization,
		Country:     result.Country,
		Industry:    result.Industry,
	}
	for _, contact := range result.Emails {
		name := contact.FullName()
		if name == "" || !isExecutivePosition(contact.Position) {
			continue
		}
		profile.DecisionMakers = append(profile.DecisionMakers, model.DecisionMaker{
			Name:          name,
			Title:         contact.Position,
			Email:         contact.Value,
			EmailVerified: contact.Confidence > verifiedConfidence,
			LinkedInURL:   contact.LinkedIn,
			Phone:         contact.PhoneNumber,
		})
	}
	return profile, nil
}

func isExecutivePosition(position string) bool {
	lower := strings.ToLower(position)
	for _, keyword := range executiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
