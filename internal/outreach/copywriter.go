// Package outreach generates personalized outreach copy for qualified leads.
package outreach

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// Length limits for each artifact.
const (
	maxConnectionChars = 300
	maxFollowupChars   = 500
	maxSubjectChars    = 50
	maxBodyWords       = 150
)

// Generator produces text for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Option configures the Copywriter.
type Option func(*Copywriter)

// WithGenerator replaces the model-backed generator (for testing).
func WithGenerator(gen Generator) Option {
	return func(c *Copywriter) {
		c.gen = gen
	}
}

// Copywriter generates outreach artifacts for a lead. Generation failures
// fall back to deterministic template copy, so Generate never fails.
type Copywriter struct {
	gen Generator
}

// NewCopywriter creates a Copywriter backed by the configured model.
func NewCopywriter(cfg config.AnthropicConfig, opts ...Option) *Copywriter {
	c := &Copywriter{
		gen: &sdkGenerator{
			client:    sdk.NewClient(option.WithAPIKey(cfg.Key)),
			model:     cfg.Model,
			maxTokens: int64(cfg.MaxTokens),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate produces the full outreach bundle for a lead.
func (c *Copywriter) Generate(ctx context.Context, lead *model.Lead) *model.OutreachCopy {
	business := businessContext(lead)

	bundle := &model.OutreachCopy{}
	bundle.ResearchSummary = c.generateOr(ctx, "research_summary",
		researchSummaryPrompt(business), fallbackSummary(lead))
	bundle.ConnectionRequest = clampChars(c.generateOr(ctx, "connection_request",
		connectionPrompt(business, lead), fallbackConnection(lead)), maxConnectionChars)
	bundle.Followup = clampChars(c.generateOr(ctx, "followup",
		followupPrompt(business, lead), fallbackFollowup(lead)), maxFollowupChars)

	subject, body := c.generateEmail(ctx, business, lead)
	bundle.EmailSubject = clampChars(subject, maxSubjectChars)
	bundle.EmailBody = clampWords(body, maxBodyWords)

	return bundle
}

// generateOr returns generated text or the fallback when generation fails or
// comes back empty.
func (c *Copywriter) generateOr(ctx context.Context, artifact, prompt, fallback string) string {
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("outreach: generation failed, using fallback",
			zap.String("artifact", artifact), zap.Error(err))
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

// generateEmail produces the cold-email subject and body from one prompt
// using SUBJECT:/BODY: markers.
func (c *Copywriter) generateEmail(ctx context.Context, business string, lead *model.Lead) (string, string) {
	fallbackSubject, fallbackBody := fallbackEmail(lead)

	text, err := c.gen.Generate(ctx, emailPrompt(business, lead))
	if err != nil {
		zap.L().Warn("outreach: email generation failed, using fallback", zap.Error(err))
		return fallbackSubject, fallbackBody
	}

	subject, body := parseEmail(text)
	if subject == "" || body == "" {
		return fallbackSubject, fallbackBody
	}
	return subject, body
}

// parseEmail splits model output on the SUBJECT: and BODY: markers.
func parseEmail(text string) (string, string) {
	var subject string
	var bodyLines []string
	inBody := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(trimmed), "SUBJECT:"):
			subject = strings.TrimSpace(trimmed[len("SUBJECT:"):])
		case strings.HasPrefix(strings.ToUpper(trimmed), "BODY:"):
			inBody = true
			if rest := strings.TrimSpace(trimmed[len("BODY:"):]); rest != "" {
				bodyLines = append(bodyLines, rest)
			}
		case inBody:
			bodyLines = append(bodyLines, line)
		}
	}
	return subject, strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

func clampChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}

func clampWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}

// sdkGenerator calls the configured model for one prompt.
type sdkGenerator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func (g *sdkGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "outreach: create message")
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}

// businessContext summarizes the lead for prompt grounding.
func businessContext(lead *model.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s (%s)\n", lead.Company.Name, lead.Company.Website)
	if lead.Company.Segment != "" {
		fmt.Fprintf(&b, "Segment: %s\n", lead.Company.Segment)
	}
	if lead.Company.Country != "" {
		fmt.Fprintf(&b, "Country: %s\n", lead.Company.Country)
	}
	if lead.Company.EmployeeCount > 0 {
		fmt.Fprintf(&b, "Employees: %d\n", lead.Company.EmployeeCount)
	}
	if lead.Company.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", lead.Company.Description)
	}
	if dm := lead.DecisionMaker; dm != nil && dm.Name != "" {
		fmt.Fprintf(&b, "Contact: %s", dm.Name)
		if dm.Title != "" {
			fmt.Fprintf(&b, ", %s", dm.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}
