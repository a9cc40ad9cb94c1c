package model

// Tier identifies the provenance of a resolved data record. Higher tiers
// carry more confidence: a live fetch beats the curated snapshot table,
// which beats a synthetic placeholder.
type Tier string

const (
	TierLive      Tier = "live"
	TierCurated   Tier = "curated"
	TierSynthetic Tier = "synthetic"
)

// FinancialProfile is a company's financial and operating snapshot.
// By the time a profile leaves the resolver every field except Revenue is
// populated; absent upstream values are filled with sentinel defaults
// rather than left empty. Revenue stays nil when no source could provide
// it, which signals downstream that a risk figure cannot be computed.
type FinancialProfile struct {
	Name        string   `json:"name"`
	Sector      string   `json:"sector"`
	MarketCap   float64  `json:"market_cap"`
	Revenue     *float64 `json:"revenue,omitempty"` // trailing twelve months
	Currency    string   `json:"currency"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Beta        float64  `json:"beta,omitempty"`
	ESGEstimate *float64 `json:"esg_estimate,omitempty"` // embedded estimate, not a measured score
}

// Sentinel defaults applied by the profile resolver.
const (
	UnknownName     = "Unknown"
	DefaultCurrency = "USD"
)

// FillDefaults replaces empty fields with sentinel values. Revenue is
// deliberately left alone.
func (p *FinancialProfile) FillDefaults() {
	if p.Sector == "" {
		p.Sector = UnknownName
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.City == "" {
		p.City = UnknownName
	}
	if p.Country == "" {
		p.Country = UnknownName
	}
}

// ESGRating is the outcome of ESG resolution: a sustainability risk score
// with a qualitative label. Score is nil when no source had one, in which
// case Label is "N/A".
type ESGRating struct {
	Score     *float64 `json:"score,omitempty"`
	Label     string   `json:"label"`
	Estimated bool     `json:"estimated"` // true when the score came from an embedded estimate
}
