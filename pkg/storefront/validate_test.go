package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalogServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func categoryClient() Client {
	return newTestClient(
		WithCategoryKeywords([]string{"sunglasses", "eyewear"}, []string{"prescription"}),
		WithMinCategoryRatio(0.30),
	)
}

func TestValidateCategory_Match(t *testing.T) {
	t.Parallel()

	srv := catalogServer(t, `{"products":[
		{"title":"Aviator Sunglasses"},
		{"title":"Wayfarer Sunglasses"},
		{"title":"Cleaning Cloth"},
		{"title":"Premium Eyewear Case","product_type":"Accessories"}
	]}`)

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.True(t, v.IsMatch)
	assert.Equal(t, 4, v.TotalItems)
	assert.Equal(t, 3, v.MatchedItems)
	assert.InDelta(t, 0.75, v.MatchRatio, 0.001)
	assert.Empty(t, v.RejectionReason)
}

func TestValidateCategory_Reject(t *testing.T) {
	t.Parallel()

	srv := catalogServer(t, `{"products":[
		{"title":"Aviator Sunglasses"},
		{"title":"Phone Case"},
		{"title":"Laptop Sleeve"},
		{"title":"Water Bottle"},
		{"title":"Notebook"}
	]}`)

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.False(t, v.IsMatch)
	assert.Equal(t, 1, v.MatchedItems)
	assert.Contains(t, v.RejectionReason, "20%")
	assert.Contains(t, v.RejectionReason, "30%")
	assert.Contains(t, v.RejectionReason, "1 of 5 products")
}

func TestValidateCategory_NegativeKeywordDisqualifies(t *testing.T) {
	t.Parallel()

	// A negative keyword overrides positive matches on the same product.
	srv := catalogServer(t, `{"products":[
		{"title":"Prescription Sunglasses"},
		{"title":"Fashion Sunglasses"}
	]}`)

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.Equal(t, 1, v.MatchedItems)
	assert.Equal(t, 2, v.TotalItems)
}

func TestValidateCategory_MatchesTags(t *testing.T) {
	t.Parallel()

	srv := catalogServer(t, `{"products":[
		{"title":"Summer Collection Item","tags":["eyewear","beach"]}
	]}`)

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.True(t, v.IsMatch)
	assert.Equal(t, 1, v.MatchedItems)
}

func TestValidateCategory_UnreachableCatalogRejects(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.False(t, v.IsMatch)
	assert.Equal(t, "cannot access product catalog", v.RejectionReason)
	assert.Zero(t, v.TotalItems)
}

func TestValidateCategory_EmptyCatalogRejects(t *testing.T) {
	t.Parallel()

	srv := catalogServer(t, `{"products":[]}`)

	v := categoryClient().ValidateCategory(context.Background(), srv.URL)

	assert.False(t, v.IsMatch)
	assert.Equal(t, "no products found", v.RejectionReason)
	assert.Zero(t, v.TotalItems)
}
