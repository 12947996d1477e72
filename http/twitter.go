package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/unfurl-go/unfurl"
)

// Default endpoints for the Twitter/X strategy. Direct fetches of status
// pages return an authentication wall, so the content comes from a public
// mirror API, with the platform's own oEmbed endpoint as the second tier.
const (
	DefaultTwitterMirrorBaseURL = "https://api.fxtwitter.com"
	DefaultTwitterOEmbedBaseURL = "https://publish.twitter.com"
)

// Ensure TwitterClient implements unfurl.Resolver at compile time.
var _ unfurl.Resolver = (*TwitterClient)(nil)

// TwitterClient resolves short-post status URLs through a two-tier
// strategy: the mirror API first, the oEmbed endpoint second. Vendor
// failures are absorbed; when both tiers fail, or the URL is not a status
// link, the result is a record with only the original URL set.
type TwitterClient struct {
	client        *http.Client
	mirrorBaseURL string
	oembedBaseURL string
}

// TwitterOption configures a TwitterClient.
type TwitterOption func(*TwitterClient)

// WithTwitterHTTPClient replaces the underlying HTTP client.
func WithTwitterHTTPClient(c *http.Client) TwitterOption {
	return func(t *TwitterClient) {
		t.client = c
	}
}

// WithTwitterMirrorBaseURL overrides the mirror API base URL. Intended for tests.
func WithTwitterMirrorBaseURL(u string) TwitterOption {
	return func(t *TwitterClient) {
		t.mirrorBaseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTwitterOEmbedBaseURL overrides the oEmbed base URL. Intended for tests.
func WithTwitterOEmbedBaseURL(u string) TwitterOption {
	return func(t *TwitterClient) {
		t.oembedBaseURL = strings.TrimSuffix(u, "/")
	}
}

// NewTwitterClient creates a new TwitterClient.
func NewTwitterClient(opts ...TwitterOption) *TwitterClient {
	t := &TwitterClient{
		client:        http.DefaultClient,
		mirrorBaseURL: DefaultTwitterMirrorBaseURL,
		oembedBaseURL: DefaultTwitterOEmbedBaseURL,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// mirrorEnvelope is the fxtwitter-style response shape.
type mirrorEnvelope struct {
	Tweet *mirrorTweet `json:"tweet"`
}

type mirrorTweet struct {
	Text   string `json:"text"`
	Author struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"author"`
	Media struct {
		Photos []struct {
			URL string `json:"url"`
		} `json:"photos"`
		Videos []struct {
			ThumbnailURL string `json:"thumbnail_url"`
		} `json:"videos"`
	} `json:"media"`
}

// oembedEnvelope is the oEmbed response shape; the post text is buried in
// the embed HTML fragment.
type oembedEnvelope struct {
	HTML       string `json:"html"`
	AuthorName string `json:"author_name"`
}

// Resolve produces a record for a status URL. It never fails: every error
// path degrades to an all-null record carrying the original URL.
func (t *TwitterClient) Resolve(ctx context.Context, rawURL string) (*unfurl.Record, error) {
	handle, id, ok := unfurl.ParseStatusPath(rawURL)
	if !ok {
		return &unfurl.Record{URL: rawURL}, nil
	}

	if rec := t.fromMirror(ctx, rawURL, handle, id); rec != nil {
		return rec, nil
	}
	if rec := t.fromOEmbed(ctx, rawURL); rec != nil {
		return rec, nil
	}
	return &unfurl.Record{URL: rawURL}, nil
}

func (t *TwitterClient) fromMirror(ctx context.Context, rawURL, handle, id string) *unfurl.Record {
	endpoint := fmt.Sprintf("%s/%s/status/%s", t.mirrorBaseURL, handle, id)
	var env mirrorEnvelope
	if err := t.getJSON(ctx, endpoint, &env); err != nil || env.Tweet == nil {
		return nil
	}
	tw := env.Tweet

	title := tw.Author.Name
	if title == "" {
		title = tw.Author.ScreenName
	}
	var image string
	if len(tw.Media.Photos) > 0 {
		image = tw.Media.Photos[0].URL
	} else if len(tw.Media.Videos) > 0 {
		image = tw.Media.Videos[0].ThumbnailURL
	}
	var author string
	if tw.Author.ScreenName != "" {
		author = "@" + tw.Author.ScreenName
	}

	return &unfurl.Record{
		Title:       title,
		Description: unfurl.Truncate(tw.Text, unfurl.MaxDescriptionLen),
		Image:       image,
		URL:         rawURL,
		Author:      author,
	}
}

func (t *TwitterClient) fromOEmbed(ctx context.Context, rawURL string) *unfurl.Record {
	endpoint := t.oembedBaseURL + "/oembed?url=" + url.QueryEscape(rawURL)
	var env oembedEnvelope
	if err := t.getJSON(ctx, endpoint, &env); err != nil || env.HTML == "" {
		return nil
	}

	// The embed HTML is a small document of its own; the quoted post text
	// sits inside the blockquote paragraph. This channel never exposes an
	// image.
	text := embedQuoteText(env.HTML)
	if text == "" && env.AuthorName == "" {
		return nil
	}
	return &unfurl.Record{
		Title:       env.AuthorName,
		Description: unfurl.Truncate(text, unfurl.MaxDescriptionLen),
		URL:         rawURL,
		Author:      env.AuthorName,
	}
}

// embedQuoteText recovers the post text from an oEmbed HTML fragment.
func embedQuoteText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("blockquote p").First().Text())
}

func (t *TwitterClient) getJSON(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return unfurl.Errorf(unfurl.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, endpoint)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
