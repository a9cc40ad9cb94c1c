package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryBody = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "longName": "Norsk Hydro ASA",
        "shortName": "NORSK HYDRO",
        "currency": "NOK",
        "marketCap": {"raw": 130000000000}
      },
      "summaryProfile": {
        "city": "Oslo",
        "country": "Norway",
        "sector": "Basic Materials"
      },
      "financialData": {
        "totalRevenue": {"raw": 150000000000}
      },
      "defaultKeyStatistics": {
        "beta": {"raw": 1.1}
      }
    }],
    "error": null
  }
}`

func TestSummary_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v10/finance/quoteSummary/NHY.OL", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "modules=")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Summary(context.Background(), "NHY.OL")

	require.NoError(t, err)
	assert.Equal(t, "Norsk Hydro ASA", got.Name)
	assert.Equal(t, "Basic Materials", got.Sector)
	assert.Equal(t, "NOK", got.Currency)
	assert.Equal(t, "Oslo", got.City)
	assert.Equal(t, "Norway", got.Country)
	assert.Equal(t, 130000000000.0, got.MarketCap)
	require.NotNil(t, got.Revenue)
	assert.Equal(t, 150000000000.0, *got.Revenue)
	assert.Equal(t, 1.1, got.Beta)
}

func TestSummary_ShortNameFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"shortName":"ACME","currency":"USD"}}],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Summary(context.Background(), "ACME")

	require.NoError(t, err)
	assert.Equal(t, "ACME", got.Name)
	assert.Nil(t, got.Revenue)
}

func TestSummary_MissingName(t *testing.T) {
	t.Parallel()

	// A record with no display name is a miss, not a success with nulls.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"currency":"USD"}}],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(context.Background(), "ACME")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoMatch))
}

func TestSummary_EmptyResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(context.Background(), "ZZZZ")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoMatch))
}

func TestSummary_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found"}}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(context.Background(), "ZZZZ")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoMatch))
}

func TestSummary_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`internal error`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(context.Background(), "NHY.OL")

	require.Error(t, err)
	assert.False(t, eris.Is(err, ErrNoMatch))
	assert.Contains(t, err.Error(), "500")
}

func TestSummary_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(context.Background(), "NHY.OL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestSummary_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Summary(ctx, "NHY.OL")
	require.Error(t, err)
}

func TestSustainability_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "esgScores")
		w.Write([]byte(`{"quoteSummary":{"result":[{"esgScores":{"totalEsg":{"raw":25.4}}}],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Sustainability(context.Background(), "NHY.OL")

	require.NoError(t, err)
	assert.Equal(t, 25.4, got)
}

func TestSustainability_AbsentSubRecord(t *testing.T) {
	t.Parallel()

	// An empty sustainability sub-record is a miss, not a zero score.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{}],"error":null}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Sustainability(context.Background(), "NHY.OL")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoMatch))
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient()
	hc := c.(*httpClient)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.NotNil(t, hc.http)
	assert.NotZero(t, hc.http.Timeout)
}
