package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/unfurl-go/unfurl"
)

// DefaultMicrolinkBaseURL is the remote rendering/metadata API base. The
// service executes JavaScript server-side, which makes it the escape hatch
// for sites whose bot mitigation blocks a plain fetch.
const DefaultMicrolinkBaseURL = "https://api.microlink.io"

// Ensure MicrolinkClient implements unfurl.Resolver at compile time.
var _ unfurl.Resolver = (*MicrolinkClient)(nil)

// MicrolinkClient adapts the remote fallback API's JSON envelope into a
// Record. It is all-or-nothing: any network failure, non-success status, or
// malformed envelope yields ENOTFOUND rather than a partial record, since a
// partial hit from a degraded source is not trustworthy on its own.
type MicrolinkClient struct {
	client  *http.Client
	baseURL string
}

// MicrolinkOption configures a MicrolinkClient.
type MicrolinkOption func(*MicrolinkClient)

// WithMicrolinkHTTPClient replaces the underlying HTTP client.
func WithMicrolinkHTTPClient(c *http.Client) MicrolinkOption {
	return func(m *MicrolinkClient) {
		m.client = c
	}
}

// WithMicrolinkBaseURL overrides the API base URL. Intended for tests.
func WithMicrolinkBaseURL(u string) MicrolinkOption {
	return func(m *MicrolinkClient) {
		m.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewMicrolinkClient creates a new MicrolinkClient.
func NewMicrolinkClient(opts ...MicrolinkOption) *MicrolinkClient {
	m := &MicrolinkClient{
		client:  http.DefaultClient,
		baseURL: DefaultMicrolinkBaseURL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type microlinkEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		Publisher   string `json:"publisher"`
		URL         string `json:"url"`
		Image       struct {
			URL string `json:"url"`
		} `json:"image"`
		Logo struct {
			URL string `json:"url"`
		} `json:"logo"`
	} `json:"data"`
}

// Resolve calls the remote API for rawURL and maps its success envelope
// into a record. Image prefers the dedicated image field over the site
// logo; author prefers the author field over the publisher.
func (m *MicrolinkClient) Resolve(ctx context.Context, rawURL string) (*unfurl.Record, error) {
	endpoint := m.baseURL + "/?url=" + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "invalid fallback request for %s: %v", rawURL, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EUNAVAILABLE, "fallback fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, unfurl.Errorf(unfurl.ENOTFOUND, "fallback returned HTTP %d for %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EUNAVAILABLE, "read fallback body for %s: %v", rawURL, err)
	}

	var env microlinkEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unfurl.Errorf(unfurl.ENOTFOUND, "malformed fallback envelope for %s: %v", rawURL, err)
	}
	if env.Status != "success" {
		return nil, unfurl.Errorf(unfurl.ENOTFOUND, "fallback status %q for %s", env.Status, rawURL)
	}

	image := env.Data.Image.URL
	if image == "" {
		image = env.Data.Logo.URL
	}
	author := env.Data.Author
	if author == "" {
		author = env.Data.Publisher
	}
	recURL := env.Data.URL
	if recURL == "" {
		recURL = rawURL
	}

	return &unfurl.Record{
		Title:       env.Data.Title,
		Description: unfurl.Truncate(env.Data.Description, unfurl.MaxDescriptionLen),
		Image:       image,
		URL:         recURL,
		Author:      author,
	}, nil
}
