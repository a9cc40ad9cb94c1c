// Package openmeteo provides a client for the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.open-meteo.com"

// Client fetches daily weather aggregates by coordinate.
type Client interface {
	// Forecast returns today's precipitation sum, max wind speed and max
	// temperature for the given coordinates, in the location's local
	// timezone. The fetch is all-or-nothing: a malformed or partial
	// response is an error, never a partial result.
	Forecast(ctx context.Context, lat, lon float64) (*Daily, error)
}

// Daily holds today's aggregates.
type Daily struct {
	PrecipitationMM float64
	WindSpeedKPH    float64
	MaxTempC        *float64
}

type forecastResponse struct {
	Daily struct {
		PrecipitationSum []float64  `json:"precipitation_sum"`
		WindSpeedMax     []float64  `json:"windspeed_10m_max"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

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

// NewClient creates an Open-Meteo client with an explicit timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Forecast(ctx context.Context, lat, lon float64) (*Daily, error) {
	reqURL := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&daily=precipitation_sum,windspeed_10m_max,temperature_2m_max&timezone=auto&forecast_days=1",
		c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("openmeteo: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "openmeteo: unmarshal response")
	}
	if len(parsed.Daily.PrecipitationSum) == 0 || len(parsed.Daily.WindSpeedMax) == 0 {
		return nil, eris.New("openmeteo: response missing daily aggregates")
	}

	d := &Daily{
		PrecipitationMM: parsed.Daily.PrecipitationSum[0],
		WindSpeedKPH:    parsed.Daily.WindSpeedMax[0],
	}
	if len(parsed.Daily.TemperatureMax) > 0 && parsed.Daily.TemperatureMax[0] != nil {
		temp := *parsed.Daily.TemperatureMax[0]
		d.MaxTempC = &temp
	}
	return d, nil
}
