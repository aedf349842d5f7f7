package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDetectCountryFromSchema_StringValue(t *testing.T) {
	t.Parallel()

	srv := pageServer(t, `<html><head>
<script type="application/ld+json">
{"@type":"Organization","address":{"streetAddress":"Main St 1","addressCountry":"DE"}}
</script></head></html>`)

	country, err := newTestClient().DetectCountryFromSchema(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "DE", country)
}

func TestDetectCountryFromSchema_CountryObject(t *testing.T) {
	t.Parallel()

	srv := pageServer(t, `<html><head>
<script type="application/ld+json">
{"@type":"Store","address":{"addressCountry":{"@type":"Country","name":"Germany"}}}
</script></head></html>`)

	country, err := newTestClient().DetectCountryFromSchema(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "DE", country)
}

func TestDetectCountryFromSchema_NoMarkup(t *testing.T) {
	t.Parallel()

	srv := pageServer(t, `<html><body>plain page</body></html>`)

	country, err := newTestClient().DetectCountryFromSchema(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, country)
}

func TestDetectCountryFromCurrency(t *testing.T) {
	t.Parallel()

	t.Run("active currency script", func(t *testing.T) {
		t.Parallel()
		srv := pageServer(t, `<html><script>Shopify.currency = {"active":"USD","rate":"1.0"};</script></html>`)
		country, err := newTestClient().DetectCountryFromCurrency(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "US", country)
	})

	t.Run("currency field fallback", func(t *testing.T) {
		t.Parallel()
		srv := pageServer(t, `<html><script>var settings = {"currency":"GBP"};</script></html>`)
		country, err := newTestClient().DetectCountryFromCurrency(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "GB", country)
	})

	t.Run("euro identifies no country", func(t *testing.T) {
		t.Parallel()
		srv := pageServer(t, `<html><script>Shopify.currency = {"active":"EUR"};</script></html>`)
		country, err := newTestClient().DetectCountryFromCurrency(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Empty(t, country)
	})
}

func TestDetectCountryFromTLD(t *testing.T) {
	t.Parallel()

	c := newTestClient()

	tests := []struct {
		url  string
		want string
	}{
		{"https://shop.example.de", "DE"},
		{"https://www.store.co.uk", "GB"},
		{"store.fi", "FI"},
		{"https://shop.example.com", ""},
		{"https://shop.myshopify.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.DetectCountryFromTLD(tt.url), tt.url)
	}
}

func TestNormalizeCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"us", "US"},
		{"DE", "DE"},
		{"United States", "US"},
		{"united kingdom", "GB"},
		{"Deutschland", "DE"},
		{"Finland", "FI"},
		{"  ch  ", "CH"},
		{"Atlantis", "Atlantis"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCountry(tt.in), tt.in)
	}
}

func TestCountryFromPage(t *testing.T) {
	t.Parallel()

	withSchema := `<script type="application/ld+json">
{"address":{"addressCountry":"Germany"}}
</script>
<script>Shopify.currency = {"active":"USD"};</script>`
	assert.Equal(t, "DE", countryFromPage(withSchema))

	currencyOnly := `<script>Shopify.currency = {"active":"USD"};</script>`
	assert.Equal(t, "US", countryFromPage(currencyOnly))

	assert.Empty(t, countryFromPage("<html></html>"))
}

func TestFindStreetAddress(t *testing.T) {
	t.Parallel()

	html := `<script type="application/ld+json">
{"address":{"streetAddress":" 123 Harbor Way ","addressLocality":"Portland"}}
</script>`
	assert.Equal(t, "123 Harbor Way", findStreetAddress(html))
	assert.Empty(t, findStreetAddress("<html></html>"))
}
