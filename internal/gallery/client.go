package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/lightbox/internal/media"
)

// Fetcher defines the interface for reading pages of a remote gallery.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchItems(ctx context.Context, query ItemQuery) (ItemPage, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to a gallery HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "lightbox/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the gallery at base (host:port or URL).
func NewClient(base string) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ItemQuery configures /api/items requests. Before and After are item IDs;
// at most one of them should be set.
type ItemQuery struct {
	Before string
	After  string
	Around string
	Limit  int
}

// FetchItems retrieves one page of items.
func (c *Client) FetchItems(ctx context.Context, query ItemQuery) (ItemPage, error) {
	if c == nil {
		return ItemPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if before := strings.TrimSpace(query.Before); before != "" {
		values.Set("before", before)
	}
	if after := strings.TrimSpace(query.After); after != "" {
		values.Set("after", after)
	}
	if around := strings.TrimSpace(query.Around); around != "" {
		values.Set("around", around)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	rel := &url.URL{Path: "/api/items", RawQuery: values.Encode()}
	var payload ItemPage
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return ItemPage{}, err
	}
	payload.Items = c.resolveItems(payload.Items)
	return payload, nil
}

// BaseURL returns the normalised gallery root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) resolveItems(items []media.Item) []media.Item {
	for i := range items {
		items[i].Source = c.resolve(items[i].Source)
		items[i].Thumbnail = c.resolve(items[i].Thumbnail)
		items[i].DownloadURL = c.resolve(items[i].DownloadURL)
		if items[i].Kind == "" {
			items[i].Kind = media.KindFromPath(items[i].Source)
		}
	}
	return items
}

func (c *Client) resolve(ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" || trimmed == media.FailedSource {
		return trimmed
	}
	rel, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return c.baseURL.ResolveReference(rel).String()
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("gallery url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse gallery url %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
