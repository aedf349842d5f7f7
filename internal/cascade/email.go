package cascade

import (
	"context"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// EmailFinder locates and verifies contact email addresses for a person at a
// domain.
type EmailFinder interface {
	FindEmail(ctx context.Context, domain, fullName string) (string, bool, error)
	VerifyEmail(ctx context.Context, email string) (bool, error)
}

// EmailValue is a resolved email address with its deliverability status.
type EmailValue struct {
	Address  string
	Verified bool
}

// EmailSources builds the email resolution order for the lead's primary
// decision maker: keep an already-known address, otherwise search by name and
// domain and check deliverability on whatever turns up.
func EmailSources(finder EmailFinder) []Source[EmailValue] {
	return []Source[EmailValue]{
		SourceFunc[EmailValue]{
			SourceName: "existing",
			Fn: func(ctx context.Context, lead *model.Lead) (EmailValue, bool, error) {
				dm := lead.DecisionMaker
				if dm == nil || dm.Email == "" {
					return EmailValue{}, false, nil
				}
				value := EmailValue{Address: dm.Email, Verified: dm.EmailVerified}
				if !value.Verified && finder != nil {
					ok, err := finder.VerifyEmail(ctx, dm.Email)
					if err == nil {
						value.Verified = ok
					}
				}
				return value, true, nil
			},
		},
		SourceFunc[EmailValue]{
			SourceName: "name_search",
			Fn: func(ctx context.Context, lead *model.Lead) (EmailValue, bool, error) {
				dm := lead.DecisionMaker
				if finder == nil || dm == nil || dm.Name == "" || dm.Name == "Store Contact" {
					return EmailValue{}, false, nil
				}
				domain := lead.Company.PrimaryDomain
				if domain == "" {
					return EmailValue{}, false, nil
				}

				email, verified, err := finder.FindEmail(ctx, domain, dm.Name)
				if err != nil || email == "" {
					return EmailValue{}, false, err
				}
				value := EmailValue{Address: email, Verified: verified}
				if !value.Verified {
					ok, err := finder.VerifyEmail(ctx, email)
					if err == nil {
						value.Verified = ok
					}
				}
				return value, true, nil
			},
		},
	}
}

// ApplyEmail writes a resolved email onto the lead's decision maker. The
// address itself is set-if-empty; the verified flag may only upgrade.
func ApplyEmail(lead *model.Lead, value EmailValue) {
	if lead.DecisionMaker == nil {
		return
	}
	SetIfEmpty(&lead.DecisionMaker.Email, value.Address)
	if lead.DecisionMaker.Email == value.Address && value.Verified {
		lead.DecisionMaker.EmailVerified = true
	}
}
