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

func TestYouTubeClient_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("derives max resolution thumbnail from video id", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oembed", r.URL.Path)
			assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", r.URL.Query().Get("url"))
			w.Write([]byte(`{
				"title": "Some Video",
				"author_name": "Some Channel",
				"thumbnail_url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
			}`))
		}))
		defer srv.Close()

		c := uhttp.NewYouTubeClient(uhttp.WithYouTubeBaseURL(srv.URL))
		rec, err := c.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		require.NoError(t, err)

		assert.Equal(t, "Some Video", rec.Title)
		assert.Equal(t, "Some Channel", rec.Author)
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", rec.Image)
		// The oEmbed API exposes no description; the URL stays as requested.
		assert.Empty(t, rec.Description)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", rec.URL)
	})

	t.Run("short link urls work too", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"title": "Clip", "author_name": "Chan", "thumbnail_url": "https://i.ytimg.com/x.jpg"}`))
		}))
		defer srv.Close()

		c := uhttp.NewYouTubeClient(uhttp.WithYouTubeBaseURL(srv.URL))
		rec, err := c.Resolve(context.Background(), "https://youtu.be/abc123")
		require.NoError(t, err)

		assert.Equal(t, "https://img.youtube.com/vi/abc123/maxresdefault.jpg", rec.Image)
	})

	t.Run("keeps oembed thumbnail when id cannot be parsed", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"title": "Live", "author_name": "Chan", "thumbnail_url": "https://i.ytimg.com/live.jpg"}`))
		}))
		defer srv.Close()

		c := uhttp.NewYouTubeClient(uhttp.WithYouTubeBaseURL(srv.URL))
		rec, err := c.Resolve(context.Background(), "https://www.youtube.com/@somechannel/streams")
		require.NoError(t, err)

		assert.Equal(t, "https://i.ytimg.com/live.jpg", rec.Image)
	})

	t.Run("api failure degrades to url-only record", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := uhttp.NewYouTubeClient(uhttp.WithYouTubeBaseURL(srv.URL))
		rec, err := c.Resolve(context.Background(), "https://www.youtube.com/watch?v=gone")
		require.NoError(t, err)

		assert.False(t, rec.HasSignal())
		assert.Equal(t, "https://www.youtube.com/watch?v=gone", rec.URL)
	})
}
