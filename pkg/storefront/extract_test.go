package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePage = `<!doctype html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:site_name" content="Nordic Frames">
<meta name="description" content="Handmade wooden sunglasses from Helsinki.">
<link rel="canonical" href="https://nordicframes.fi/">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Organization",
 "address":{"streetAddress":"Mannerheimintie 1","addressCountry":"FI"}}
</script>
<script>var Shopify = Shopify || {}; Shopify.currency = {"active":"SEK","rate":"1.0"};</script>
</head>
<body>
<a href="tel:+358401234567">Call us</a>
<a href="https://www.instagram.com/nordicframes">Instagram</a>
<a href="https://facebook.com/nordicframes">Facebook</a>
<p>Questions? Write to hello@nordicframes.fi or support@shopify.com</p>
<img src="sprite@2x.png">
</body>
</html>`

func TestExtractStoreInfo(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(storePage))
	}))
	defer srv.Close()

	info, err := newTestClient().ExtractStoreInfo(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Nordic Frames", info.Name)
	assert.Equal(t, "Handmade wooden sunglasses from Helsinki.", info.Description)
	assert.Equal(t, "hello@nordicframes.fi", info.Email)
	assert.Equal(t, "+358401234567", info.Phone)
	assert.Equal(t, "SEK", info.Currency)
	assert.Equal(t, "FI", info.Country)
	assert.Equal(t, "Mannerheimintie 1", info.Address)
	assert.Equal(t, "nordicframes.fi", info.RealDomain)
	assert.Contains(t, info.SocialLinks["instagram"], "instagram.com")
	assert.Contains(t, info.SocialLinks["facebook"], "facebook.com")
}

func TestExtractStoreInfo_TitleFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Shade Shop</title></head><body></body></html>`))
	}))
	defer srv.Close()

	info, err := newTestClient().ExtractStoreInfo(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Shade Shop", info.Name)
	assert.Empty(t, info.RealDomain)
}

func TestExtractStoreInfo_ContactPageFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages/contact":
			w.Write([]byte(`<html><body>Reach us at owner@merchantstore.io</body></html>`))
		default:
			w.Write([]byte(`<html><head><title>Store</title></head><body>No contact here</body></html>`))
		}
	}))
	defer srv.Close()

	info, err := newTestClient().ExtractStoreInfo(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "owner@merchantstore.io", info.Email)
}

func TestExtractStoreInfo_FetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient().ExtractStoreInfo(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestContactEmail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>hello@merchantstore.io</body></html>`))
	}))
	defer srv.Close()

	email, err := newTestClient().ContactEmail(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello@merchantstore.io", email)
}

func TestFirstValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain", "contact hello@merchantstore.io today", "hello@merchantstore.io"},
		{"skips image asset", "sprite@2x.png then hello@merchantstore.io", "hello@merchantstore.io"},
		{"skips platform address", "support@shopify.com hello@merchantstore.io", "hello@merchantstore.io"},
		{"skips placeholder", "you@example.com noreply@merchantstore.io", ""},
		{"nothing", "no addresses here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, firstValidEmail(tt.html))
		})
	}
}

func TestHostOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "merchant.com", hostOf("https://www.merchant.com/pages/about"))
	assert.Equal(t, "merchant.com", hostOf("HTTP://MERCHANT.COM?q=1"))
	assert.Equal(t, "", hostOf(""))
}
