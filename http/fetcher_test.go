package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uhttp "github.com/unfurl-go/unfurl/http"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and status on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := uhttp.NewFetcher(uhttp.WithHTTPClient(srv.Client()))
		resp, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, resp.OK())
		assert.Equal(t, "<html>ok</html>", resp.Body)
	})

	t.Run("returns body for failure statuses instead of erroring", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("<html><title>Just a moment...</title></html>"))
		}))
		defer srv.Close()

		f := uhttp.NewFetcher(uhttp.WithHTTPClient(srv.Client()))
		resp, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
		assert.False(t, resp.OK())
		assert.Contains(t, resp.Status, "403")
		assert.Contains(t, resp.Body, "Just a moment")
	})

	t.Run("sends desktop browser headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer srv.Close()

		f := uhttp.NewFetcher(uhttp.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, uhttp.DefaultUserAgent, got.Get("User-Agent"))
		assert.NotEmpty(t, got.Get("Accept"))
		assert.NotEmpty(t, got.Get("Accept-Language"))
		assert.NotEmpty(t, got.Get("sec-ch-ua"))
		assert.Equal(t, "document", got.Get("Sec-Fetch-Dest"))
		assert.Equal(t, "navigate", got.Get("Sec-Fetch-Mode"))
	})

	t.Run("transport failure returns error", func(t *testing.T) {
		t.Parallel()

		f := uhttp.NewFetcher(uhttp.WithHTTPClient(http.DefaultClient))
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")

		require.Error(t, err)
	})
}
