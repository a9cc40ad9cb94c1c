// Package ddg provides a client for the DuckDuckGo news search endpoint.
package ddg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://duckduckgo.com"

// Client searches news headlines.
type Client interface {
	// News returns up to max headline records for a free-text query.
	News(ctx context.Context, query string, max int) ([]Result, error)
}

// Result is a single headline record.
type Result struct {
	Title   string
	Excerpt string
	Source  string
	Date    time.Time
	URL     string
}

type newsResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Excerpt string `json:"excerpt"`
		Source  string `json:"source"`
		Date    int64  `json:"date"` // unix seconds
		URL     string `json:"url"`
	} `json:"results"`
}

// vqdPattern extracts the query-scoped token the news endpoint requires.
var vqdPattern = regexp.MustCompile(`vqd=["']?([\d-]+)["']?`)

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a DuckDuckGo news client with an explicit timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) News(ctx context.Context, query string, max int) ([]Result, error) {
	vqd, err := c.fetchVQD(ctx, query)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/news.js?l=us-en&o=json&noamp=1&q=%s&vqd=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(vqd))

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "ddg: unmarshal news response")
	}

	results := make([]Result, 0, max)
	for _, r := range parsed.Results {
		if len(results) >= max {
			break
		}
		results = append(results, Result{
			Title:   r.Title,
			Excerpt: r.Excerpt,
			Source:  r.Source,
			Date:    time.Unix(r.Date, 0).UTC(),
			URL:     r.URL,
		})
	}
	return results, nil
}

// fetchVQD requests the search page to obtain the query-scoped token.
func (c *httpClient) fetchVQD(ctx context.Context, query string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/?q=%s&iar=news", c.baseURL, url.QueryEscape(query)))
	if err != nil {
		return "", err
	}
	m := vqdPattern.FindSubmatch(body)
	if m == nil {
		return "", eris.New("ddg: vqd token not found")
	}
	return string(m[1]), nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: create request")
	}
	req.Header.Set("User-Agent", "georisk-cli/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ddg: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
