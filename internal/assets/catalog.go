// Package assets holds the curated static catalogs: verified facility
// coordinates, offline financial snapshots, and the ticker-to-entity-name
// map used for news search. Catalogs are loaded once from embedded YAML
// and never mutated at runtime.
package assets

import (
	"embed"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/georisk-cli/internal/model"
)

//go:embed data/*.yaml
var dataFS embed.FS

// curatedProfile is the YAML shape of one offline financial snapshot.
type curatedProfile struct {
	Ticker      string   `yaml:"ticker"`
	Name        string   `yaml:"name"`
	Sector      string   `yaml:"sector"`
	MarketCap   float64  `yaml:"market_cap"`
	Currency    string   `yaml:"currency"`
	City        string   `yaml:"city"`
	Country     string   `yaml:"country"`
	Revenue     *float64 `yaml:"revenue"`
	Beta        float64  `yaml:"beta"`
	ESGEstimate *float64 `yaml:"esg_estimate"`
}

// Catalog is the read-only collection of curated lookup tables.
type Catalog struct {
	assets   map[string]map[model.AssetLayer]model.AssetRecord
	profiles []curatedProfile // ordered: fuzzy matching is first-match
	byTicker map[string]int
	entities map[string]string
}

// Load parses the embedded catalogs.
func Load() (*Catalog, error) {
	c := &Catalog{
		assets:   make(map[string]map[model.AssetLayer]model.AssetRecord),
		byTicker: make(map[string]int),
		entities: make(map[string]string),
	}

	raw, err := dataFS.ReadFile("data/assets.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "assets: read assets.yaml")
	}
	var assetsByTicker map[string]map[string]model.AssetRecord
	if err := yaml.Unmarshal(raw, &assetsByTicker); err != nil {
		return nil, eris.Wrap(err, "assets: parse assets.yaml")
	}
	for ticker, layers := range assetsByTicker {
		m := make(map[model.AssetLayer]model.AssetRecord, len(layers))
		for layer, rec := range layers {
			parsed, err := model.ParseLayer(layer)
			if err != nil {
				return nil, eris.Wrapf(err, "assets: ticker %s", ticker)
			}
			m[parsed] = rec
		}
		c.assets[ticker] = m
	}

	raw, err = dataFS.ReadFile("data/profiles.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "assets: read profiles.yaml")
	}
	if err := yaml.Unmarshal(raw, &c.profiles); err != nil {
		return nil, eris.Wrap(err, "assets: parse profiles.yaml")
	}
	for i, p := range c.profiles {
		if p.Ticker == "" || p.Name == "" {
			return nil, eris.Errorf("assets: profiles.yaml entry %d missing ticker or name", i)
		}
		c.byTicker[p.Ticker] = i
	}

	raw, err = dataFS.ReadFile("data/entities.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "assets: read entities.yaml")
	}
	if err := yaml.Unmarshal(raw, &c.entities); err != nil {
		return nil, eris.Wrap(err, "assets: parse entities.yaml")
	}

	return c, nil
}

// Asset returns the curated facility record for (ticker, layer), if any.
// The HQ layer is never curated; it always resolves through geocoding.
func (c *Catalog) Asset(ticker string, layer model.AssetLayer) (model.AssetRecord, bool) {
	layers, ok := c.assets[ticker]
	if !ok {
		return model.AssetRecord{}, false
	}
	rec, ok := layers[layer]
	return rec, ok
}

// Profile returns the curated snapshot for an exact ticker match.
func (c *Catalog) Profile(ticker string) (model.FinancialProfile, bool) {
	i, ok := c.byTicker[ticker]
	if !ok {
		return model.FinancialProfile{}, false
	}
	return c.profiles[i].toModel(), true
}

// FuzzyProfile performs a case-insensitive substring match of the requested
// ticker against curated tickers, in either direction. The first matching
// entry in catalog order wins.
func (c *Catalog) FuzzyProfile(ticker string) (model.FinancialProfile, string, bool) {
	needle := strings.ToLower(ticker)
	for _, p := range c.profiles {
		key := strings.ToLower(p.Ticker)
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			return p.toModel(), p.Ticker, true
		}
	}
	return model.FinancialProfile{}, "", false
}

// EntityName maps a ticker to the canonical company name for news search.
// Falls back to the supplied default when the ticker is not in the map.
func (c *Catalog) EntityName(ticker, fallback string) string {
	if name, ok := c.entities[ticker]; ok {
		return name
	}
	return fallback
}

// Tickers returns the curated profile tickers in catalog order.
func (c *Catalog) Tickers() []string {
	out := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.Ticker
	}
	return out
}

func (p curatedProfile) toModel() model.FinancialProfile {
	fp := model.FinancialProfile{
		Name:        p.Name,
		Sector:      p.Sector,
		MarketCap:   p.MarketCap,
		Currency:    p.Currency,
		City:        p.City,
		Country:     p.Country,
		Beta:        p.Beta,
		ESGEstimate: p.ESGEstimate,
	}
	if p.Revenue != nil {
		rev := *p.Revenue
		fp.Revenue = &rev
	}
	fp.FillDefaults()
	return fp
}
