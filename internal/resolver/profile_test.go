package resolver

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

func loadCatalog(t *testing.T) *assets.Catalog {
	t.Helper()
	c, err := assets.Load()
	require.NoError(t, err)
	return c
}

func TestResolveProfile_Live(t *testing.T) {
	t.Parallel()

	rev := 150000000000.0
	market := &fakeMarket{summary: &yahoo.Summary{
		Name:      "Norsk Hydro ASA",
		Sector:    "Basic Materials",
		MarketCap: 130000000000,
		Revenue:   &rev,
		Currency:  "NOK",
		City:      "Oslo",
		Country:   "Norway",
		Beta:      1.1,
	}}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "NHY.OL")

	assert.Equal(t, model.TierLive, tier)
	assert.Equal(t, "Norsk Hydro ASA", p.Name)
	assert.Equal(t, "Basic Materials", p.Sector)
	require.NotNil(t, p.Revenue)
	assert.Equal(t, rev, *p.Revenue)
}

func TestResolveProfile_LiveFillsSentinels(t *testing.T) {
	t.Parallel()

	// A live record with gaps still leaves the resolver fully populated.
	market := &fakeMarket{summary: &yahoo.Summary{Name: "Acme Holdings"}}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "ACME")

	assert.Equal(t, model.TierLive, tier)
	assert.Equal(t, model.UnknownName, p.Sector)
	assert.Equal(t, model.DefaultCurrency, p.Currency)
	assert.Equal(t, model.UnknownName, p.City)
	assert.Equal(t, model.UnknownName, p.Country)
	assert.Nil(t, p.Revenue)
}

func TestResolveProfile_CuratedFallback(t *testing.T) {
	t.Parallel()

	market := &fakeMarket{summaryErr: eris.New("connection refused")}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "SHELL")

	assert.Equal(t, model.TierCurated, tier)
	assert.Equal(t, "Shell PLC", p.Name)
	assert.Equal(t, "Energy", p.Sector)
}

func TestResolveProfile_ExactBeatsFuzzy(t *testing.T) {
	t.Parallel()

	// "ASML" is both an exact key and a substring of itself; the exact
	// entry must win before fuzzy matching runs.
	market := &fakeMarket{summaryErr: yahoo.ErrNoMatch}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "ASML")

	assert.Equal(t, model.TierCurated, tier)
	assert.Equal(t, "ASML Holding N.V.", p.Name)
}

func TestResolveProfile_FuzzyFallback(t *testing.T) {
	t.Parallel()

	market := &fakeMarket{summaryErr: yahoo.ErrNoMatch}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "NHY")

	assert.Equal(t, model.TierCurated, tier)
	assert.Equal(t, "Norsk Hydro ASA", p.Name)
}

func TestResolveProfile_Synthetic(t *testing.T) {
	t.Parallel()

	market := &fakeMarket{summaryErr: yahoo.ErrNoMatch}

	r := NewProfileResolver(market, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "XQJW")

	assert.Equal(t, model.TierSynthetic, tier)
	assert.Equal(t, "XQJW (Simulated)", p.Name)
	assert.Equal(t, "Industrial (Unknown)", p.Sector)
	require.NotNil(t, p.Revenue)
	assert.Equal(t, 5_000_000_000.0, *p.Revenue)
	require.NotNil(t, p.ESGEstimate)
	assert.Equal(t, 25.0, *p.ESGEstimate)
}

func TestResolveProfile_NilMarketSkipsLive(t *testing.T) {
	t.Parallel()

	r := NewProfileResolver(nil, loadCatalog(t))
	p, tier := r.Resolve(context.Background(), "TSLA")

	assert.Equal(t, model.TierCurated, tier)
	assert.Equal(t, "Tesla Inc.", p.Name)
}

func TestResolveProfile_AlwaysFullyPopulated(t *testing.T) {
	t.Parallel()

	market := &fakeMarket{summaryErr: eris.New("timeout")}
	r := NewProfileResolver(market, loadCatalog(t))

	for _, ticker := range []string{"SHELL", "NHY", "XQJW", "A", ""} {
		p, _ := r.Resolve(context.Background(), ticker)
		assert.NotEmpty(t, p.Sector, ticker)
		assert.NotEmpty(t, p.Currency, ticker)
		assert.NotEmpty(t, p.City, ticker)
		assert.NotEmpty(t, p.Country, ticker)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FailureNoMatch, Classify(yahoo.ErrNoMatch))
	assert.Equal(t, FailureNoMatch, Classify(eris.Wrap(yahoo.ErrNoMatch, "wrapped")))
	assert.Equal(t, FailureTransport, Classify(eris.New("connection reset by peer")))
}
