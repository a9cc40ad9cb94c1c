package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/georisk-cli/internal/model"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)
	assert.Len(t, c.Tickers(), 7)
}

func TestAsset_Curated(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	rec, ok := c.Asset("TSLA", model.LayerFactory)
	require.True(t, ok)
	assert.Equal(t, "Gigafactory Berlin-Brandenburg", rec.Name)
	assert.InDelta(t, 52.3936, rec.Latitude, 1e-9)
	assert.InDelta(t, 13.7984, rec.Longitude, 1e-9)

	rec, ok = c.Asset("NHY.OL", model.LayerLogistics)
	require.True(t, ok)
	assert.InDelta(t, 62.6790, rec.Latitude, 1e-9)
}

func TestAsset_NoHQLayer(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	// HQ is never curated; it always resolves through geocoding.
	_, ok := c.Asset("TSLA", model.LayerHQ)
	assert.False(t, ok)
}

func TestAsset_UnknownTicker(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Asset("ZZZZ", model.LayerFactory)
	assert.False(t, ok)
}

func TestProfile_Exact(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	p, ok := c.Profile("SHELL")
	require.True(t, ok)
	assert.Equal(t, "Shell PLC", p.Name)
	assert.Equal(t, "Energy", p.Sector)
	assert.Equal(t, "USD", p.Currency)
	require.NotNil(t, p.Revenue)
	assert.Equal(t, 316000000000.0, *p.Revenue)
	require.NotNil(t, p.ESGEstimate)
	assert.Equal(t, 34.0, *p.ESGEstimate)
}

func TestFuzzyProfile(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	// Requested-in-key: "NHY" is a substring of curated "NHY.OL".
	p, matched, ok := c.FuzzyProfile("NHY")
	require.True(t, ok)
	assert.Equal(t, "NHY.OL", matched)
	assert.Equal(t, "Norsk Hydro ASA", p.Name)

	// Key-in-requested: curated "ASML" is a substring of "ASML.AS".
	p, matched, ok = c.FuzzyProfile("asml.as")
	require.True(t, ok)
	assert.Equal(t, "ASML", matched)
	assert.Equal(t, "ASML Holding N.V.", p.Name)
}

func TestFuzzyProfile_NoMatch(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	_, _, ok := c.FuzzyProfile("XQJW")
	assert.False(t, ok)
}

func TestEntityName(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Norsk Hydro", c.EntityName("NHY.OL", "NHY.OL"))
	assert.Equal(t, "Some Corp", c.EntityName("XQJW", "Some Corp"))
}

func TestProfiles_AlwaysFullyPopulated(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	for _, ticker := range c.Tickers() {
		p, ok := c.Profile(ticker)
		require.True(t, ok, ticker)
		assert.NotEmpty(t, p.Name, ticker)
		assert.NotEmpty(t, p.Sector, ticker)
		assert.NotEmpty(t, p.Currency, ticker)
		assert.NotEmpty(t, p.City, ticker)
		assert.NotEmpty(t, p.Country, ticker)
	}
}
