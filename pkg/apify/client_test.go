package apify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunActorSync(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/acts/apify~google-search-scraper/run-sync-get-dataset-items", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		payload, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"queries":"sunglasses shop"}`, string(payload))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"title":"First"},{"title":"Second"}]`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	items, err := c.RunActorSync(context.Background(), "apify~google-search-scraper",
		map[string]string{"queries": "sunglasses shop"})

	require.NoError(t, err)
	require.Len(t, items, 2)

	var first struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(items[0], &first))
	assert.Equal(t, "First", first.Title)
}

func TestRunActorSync_EmptyDataset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	items, err := c.RunActorSync(context.Background(), "some~actor", map[string]any{})

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRunActorSync_RetriesOnServerError(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"url":"https://merchant.com"}]`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	items, err := c.RunActorSync(context.Background(), "some~actor", nil)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestRunActorSync_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"insufficient-credit"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	_, err := c.RunActorSync(context.Background(), "some~actor", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "some~actor")
}

func TestRunActorSync_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	_, err := c.RunActorSync(context.Background(), "some~actor", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
