package outreach

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// segmentAngle gives the prompt a sales angle per segment.
var segmentAngle = map[model.Segment]string{
	model.SegmentEPharmacy:  "regulated online pharmacy operations and cross-border fulfillment",
	model.SegmentSunglasses: "direct-to-consumer eyewear brands and seasonal demand",
	model.SegmentEyewear:    "independent eyewear retail and fitting-driven customer journeys",
}

func researchSummaryPrompt(business string) string {
	return fmt.Sprintf(`You are a B2B sales researcher. Write a concise research summary
(3-4 sentences) about this company for a sales rep preparing outreach.
Focus on what the company sells, its market, and anything notable about
its size or positioning. Plain text only.

%s`, business)
}

func connectionPrompt(business string, lead *model.Lead) string {
	return fmt.Sprintf(`Write a LinkedIn connection request to the contact below.
Hard limit: %d characters. Friendly, specific to their business, no
placeholders, no hashtags. Mention their store naturally. Angle: %s.
Output only the message text.

%s`, maxConnectionChars, angleFor(lead), business)
}

func followupPrompt(business string, lead *model.Lead) string {
	return fmt.Sprintf(`Write a LinkedIn follow-up message for after the connection was
accepted. Hard limit: %d characters. One concrete observation about
their store, one question inviting a reply. Angle: %s. Output only the
message text.

%s`, maxFollowupChars, angleFor(lead), business)
}

func emailPrompt(business string, lead *model.Lead) string {
	return fmt.Sprintf(`Write a cold outreach email to the contact below. Subject line at
most %d characters, body at most %d words. Angle: %s. No placeholders.
Format the output exactly as:
SUBJECT: <subject line>
BODY:
<body text>

%s`, maxSubjectChars, maxBodyWords, angleFor(lead), business)
}

func angleFor(lead *model.Lead) string {
	if angle, ok := segmentAngle[lead.Company.Segment]; ok {
		return angle
	}
	return "independent e-commerce brands"
}

// Deterministic fallback copy, used whenever generation fails.

func fallbackSummary(lead *model.Lead) string {
	parts := []string{fmt.Sprintf("%s is an online store at %s.", companyName(lead), lead.Company.Website)}
	if lead.Company.Country != "" {
		parts = append(parts, fmt.Sprintf("The company is based in %s.", lead.Company.Country))
	}
	if lead.Company.EmployeeCount > 0 {
		parts = append(parts, fmt.Sprintf("It has roughly %d employees.", lead.Company.EmployeeCount))
	}
	return strings.Join(parts, " ")
}

func fallbackConnection(lead *model.Lead) string {
	return fmt.Sprintf("Hi%s, I came across %s and was impressed by the store. "+
		"I work with independent e-commerce brands and would love to connect.",
		contactFirstName(lead), companyName(lead))
}

func fallbackFollowup(lead *model.Lead) string {
	return fmt.Sprintf("Thanks for connecting%s. I had a closer look at %s and think "+
		"there could be a good fit with what we do for stores like yours. "+
		"Would you be open to a short call in the coming weeks?",
		contactFirstName(lead), companyName(lead))
}

func fallbackEmail(lead *model.Lead) (string, string) {
	subject := fmt.Sprintf("Quick question about %s", companyName(lead))
	body := fmt.Sprintf("Hi%s,\n\nI came across %s and wanted to reach out directly. "+
		"We help independent online stores grow without adding operational overhead.\n\n"+
		"Would you be open to a brief call to see if it's relevant for you?\n\nBest regards",
		contactFirstName(lead), companyName(lead))
	return subject, body
}

func companyName(lead *model.Lead) string {
	if lead.Company.Name != "" {
		return lead.Company.Name
	}
	return lead.Company.Website
}

func contactFirstName(lead *model.Lead) string {
	dm := lead.DecisionMaker
	if dm == nil || dm.Name == "" || dm.Name == "Store Contact" {
		return ""
	}
	first := strings.Fields(dm.Name)[0]
	return " " + first
}
