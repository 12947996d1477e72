package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/unfurl-go/unfurl"
)

// DefaultYouTubeOEmbedBaseURL is the platform oEmbed endpoint base.
const DefaultYouTubeOEmbedBaseURL = "https://www.youtube.com"

// Ensure YouTubeClient implements unfurl.Resolver at compile time.
var _ unfurl.Resolver = (*YouTubeClient)(nil)

// YouTubeClient resolves video URLs through the platform's oEmbed endpoint.
// The oEmbed payload carries title and channel name; the thumbnail is
// upgraded to the maximum-resolution pattern when the video ID can be
// parsed from the URL. On any failure the result is an all-null record
// carrying the original URL.
type YouTubeClient struct {
	client  *http.Client
	baseURL string
}

// YouTubeOption configures a YouTubeClient.
type YouTubeOption func(*YouTubeClient)

// WithYouTubeHTTPClient replaces the underlying HTTP client.
func WithYouTubeHTTPClient(c *http.Client) YouTubeOption {
	return func(y *YouTubeClient) {
		y.client = c
	}
}

// WithYouTubeBaseURL overrides the oEmbed base URL. Intended for tests.
func WithYouTubeBaseURL(u string) YouTubeOption {
	return func(y *YouTubeClient) {
		y.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewYouTubeClient creates a new YouTubeClient.
func NewYouTubeClient(opts ...YouTubeOption) *YouTubeClient {
	y := &YouTubeClient{
		client:  http.DefaultClient,
		baseURL: DefaultYouTubeOEmbedBaseURL,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

type youtubeOEmbed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Resolve produces a record for a video URL. Description is always empty
// (the oEmbed API does not expose it) and the URL is always the original.
func (y *YouTubeClient) Resolve(ctx context.Context, rawURL string) (*unfurl.Record, error) {
	endpoint := y.baseURL + "/oembed?format=json&url=" + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &unfurl.Record{URL: rawURL}, nil
	}
	resp, err := y.client.Do(req)
	if err != nil {
		return &unfurl.Record{URL: rawURL}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &unfurl.Record{URL: rawURL}, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &unfurl.Record{URL: rawURL}, nil
	}
	var payload youtubeOEmbed
	if err := json.Unmarshal(body, &payload); err != nil {
		return &unfurl.Record{URL: rawURL}, nil
	}

	image := payload.ThumbnailURL
	if id, ok := unfurl.YouTubeVideoID(rawURL); ok {
		image = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
	}

	return &unfurl.Record{
		Title:  payload.Title,
		Image:  image,
		URL:    rawURL,
		Author: payload.AuthorName,
	}, nil
}
