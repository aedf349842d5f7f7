package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDecisionMakersFromSite(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages/about" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Organization",
 "founder":{"@type":"Person","name":"Jane Doe","jobTitle":"Founder"}}
</script>
</head><body>
<p>Our story began when Sam Ops - Managing Director joined the family business.</p>
<p>Support is run by Pat Lee, Customer Happiness.</p>
</body></html>`))
	}))
	defer srv.Close()

	s := NewSiteScan("leadgen-test/1.0")
	dms, err := s.FindDecisionMakersFromSite(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, dms, 2)
	assert.Equal(t, "Jane Doe", dms[0].Name)
	assert.Equal(t, "Founder", dms[0].Title)
	assert.Equal(t, "Sam Ops", dms[1].Name)
	assert.Equal(t, "Managing Director", dms[1].Title)
}

func TestFindDecisionMakersFromSite_NothingFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Just products, no people.</body></html>`))
	}))
	defer srv.Close()

	s := NewSiteScan("leadgen-test/1.0")
	dms, err := s.FindDecisionMakersFromSite(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, dms)
}

func TestFindDecisionMakersFromSite_EmptyURL(t *testing.T) {
	t.Parallel()

	s := NewSiteScan("leadgen-test/1.0")
	dms, err := s.FindDecisionMakersFromSite(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, dms)
}

func TestPeopleFromJSONLD(t *testing.T) {
	t.Parallel()

	html := `<script type="application/ld+json">
{"@graph":[
  {"@type":"Person","name":"Jane Doe","jobTitle":"CEO"},
  {"@type":"Person","name":"Bob Intern","jobTitle":"Intern"},
  {"@type":"Person","name":"","jobTitle":"Owner"}
]}
</script>`

	dms := peopleFromJSONLD(html)
	require.Len(t, dms, 1)
	assert.Equal(t, "Jane Doe", dms[0].Name)
}

func TestPeopleFromText(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<p>Jane Doe, Founder</p>
<p>Sam Ops - CEO</p>
<p>random text without names</p>
</body></html>`

	dms := peopleFromText(html)
	require.Len(t, dms, 2)
	assert.Equal(t, "Jane Doe", dms[0].Name)
	assert.Equal(t, "Founder", dms[0].Title)
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.com", baseURL("https://shop.com/pages/about"))
	assert.Equal(t, "https://shop.com", baseURL("shop.com"))
	assert.Equal(t, "http://shop.com", baseURL("http://shop.com/"))
	assert.Equal(t, "", baseURL(""))
}
