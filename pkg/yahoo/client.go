// Package yahoo provides a client for the Yahoo Finance quoteSummary API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoMatch indicates the service answered but returned no usable record
// for the symbol. Distinct from transport failures so callers can tell
// "service said no" from "service was unreachable".
var ErrNoMatch = eris.New("yahoo: no match for symbol")

// Client fetches company summaries by ticker symbol.
type Client interface {
	// Summary fetches the profile-like record for a symbol. An empty or
	// malformed response is ErrNoMatch, not success with null fields.
	Summary(ctx context.Context, symbol string) (*Summary, error)
	// Sustainability fetches the total ESG risk score for a symbol.
	// Returns ErrNoMatch when the sustainability sub-record is absent.
	Sustainability(ctx context.Context, symbol string) (float64, error)
}

// Summary is the flattened quoteSummary record the pipeline consumes.
type Summary struct {
	Name      string
	Sector    string
	MarketCap float64
	Revenue   *float64
	Currency  string
	City      string
	Country   string
	Beta      float64
}

// rawNumber is Yahoo's {raw, fmt} number envelope.
type rawNumber struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price *struct {
		LongName  string    `json:"longName"`
		ShortName string    `json:"shortName"`
		Currency  string    `json:"currency"`
		MarketCap rawNumber `json:"marketCap"`
	} `json:"price"`
	SummaryProfile *struct {
		City    string `json:"city"`
		Country string `json:"country"`
		Sector  string `json:"sector"`
	} `json:"summaryProfile"`
	FinancialData *struct {
		TotalRevenue rawNumber `json:"totalRevenue"`
	} `json:"financialData"`
	DefaultKeyStatistics *struct {
		Beta rawNumber `json:"beta"`
	} `json:"defaultKeyStatistics"`
	ESGScores *struct {
		TotalESG rawNumber `json:"totalEsg"`
	} `json:"esgScores"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL (for testing).
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

// NewClient creates a Yahoo Finance client with an explicit timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Summary(ctx context.Context, symbol string) (*Summary, error) {
	result, err := c.quoteSummary(ctx, symbol, "price,summaryProfile,financialData,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	if result.Price == nil {
		return nil, ErrNoMatch
	}
	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}
	if name == "" {
		return nil, ErrNoMatch
	}

	s := &Summary{
		Name:     name,
		Currency: result.Price.Currency,
	}
	if result.Price.MarketCap.Raw != nil {
		s.MarketCap = *result.Price.MarketCap.Raw
	}
	if result.SummaryProfile != nil {
		s.Sector = result.SummaryProfile.Sector
		s.City = result.SummaryProfile.City
		s.Country = result.SummaryProfile.Country
	}
	if result.FinancialData != nil && result.FinancialData.TotalRevenue.Raw != nil {
		rev := *result.FinancialData.TotalRevenue.Raw
		s.Revenue = &rev
	}
	if result.DefaultKeyStatistics != nil && result.DefaultKeyStatistics.Beta.Raw != nil {
		s.Beta = *result.DefaultKeyStatistics.Beta.Raw
	}
	return s, nil
}

func (c *httpClient) Sustainability(ctx context.Context, symbol string) (float64, error) {
	result, err := c.quoteSummary(ctx, symbol, "esgScores")
	if err != nil {
		return 0, err
	}
	if result.ESGScores == nil || result.ESGScores.TotalESG.Raw == nil {
		return 0, ErrNoMatch
	}
	return *result.ESGScores.TotalESG.Raw, nil
}

func (c *httpClient) quoteSummary(ctx context.Context, symbol, modules string) (*quoteSummaryResult, error) {
	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "yahoo: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "georisk-cli/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "yahoo: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "yahoo: read response")
	}

	// Yahoo reports unknown symbols as 404 with an error envelope.
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoMatch
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("yahoo: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "yahoo: unmarshal response")
	}
	if parsed.QuoteSummary.Error != nil {
		return nil, ErrNoMatch
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, ErrNoMatch
	}
	return &parsed.QuoteSummary.Result[0], nil
}
