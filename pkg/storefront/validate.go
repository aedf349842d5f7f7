package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

type catalogProduct struct {
	Title       string   `json:"title"`
	ProductType string   `json:"product_type"`
	Tags        []string `json:"tags"`
}

// ValidateCategory fetches the store catalog and measures what share of
// products match the configured category keywords. A catalog that cannot be
// read rejects: the category cannot be confirmed without products.
func (c *httpClient) ValidateCategory(ctx context.Context, rawURL string) *model.CategoryValidation {
	resolved := normalizeCandidateURL(rawURL)

	body, status, err := c.fetch(ctx, productsURL(resolved)+"?limit=250")
	if err != nil || status != http.StatusOK {
		zap.L().Debug("storefront: catalog unavailable",
			zap.String("url", resolved),
			zap.Int("status", status),
			zap.Error(err))
		return &model.CategoryValidation{RejectionReason: "cannot access product catalog"}
	}

	var doc struct {
		Products []catalogProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &doc); err != nil || len(doc.Products) == 0 {
		zap.L().Debug("storefront: empty catalog",
			zap.String("url", resolved))
		return &model.CategoryValidation{RejectionReason: "no products found"}
	}

	var matched int
	for _, p := range doc.Products {
		if c.productMatches(p) {
			matched++
		}
	}

	total := len(doc.Products)
	ratio := float64(matched) / float64(total)
	result := &model.CategoryValidation{
		IsMatch:      ratio >= c.minRatio,
		MatchRatio:   ratio,
		TotalItems:   total,
		MatchedItems: matched,
	}
	if !result.IsMatch {
		result.RejectionReason = fmt.Sprintf(
			"category match %.0f%% below required %.0f%% (%d of %d products)",
			ratio*100, c.minRatio*100, matched, total)
	}
	return result
}

// productMatches checks one product against the keyword lists. A negative
// keyword hit disqualifies the product regardless of positive matches.
func (c *httpClient) productMatches(p catalogProduct) bool {
	text := strings.ToLower(p.Title + " " + p.ProductType + " " + strings.Join(p.Tags, " "))
	for _, negative := range c.negatives {
		if strings.Contains(text, strings.ToLower(negative)) {
			return false
		}
	}
	for _, keyword := range c.keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
