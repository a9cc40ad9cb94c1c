package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// AssetLayer selects which physical asset of a company to analyze.
type AssetLayer string

const (
	LayerHQ        AssetLayer = "hq"
	LayerFactory   AssetLayer = "factory"
	LayerLogistics AssetLayer = "logistics"
)

// ParseLayer normalizes a user-supplied layer string.
func ParseLayer(s string) (AssetLayer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hq", "headquarters":
		return LayerHQ, nil
	case "factory", "manufacturing":
		return LayerFactory, nil
	case "logistics", "supply-chain":
		return LayerLogistics, nil
	default:
		return "", eris.Errorf("model: unknown asset layer %q", s)
	}
}

// RoleLabel returns the narrative label for the layer, used in report text.
func (l AssetLayer) RoleLabel() string {
	switch l {
	case LayerFactory:
		return "primary manufacturing facility"
	case LayerLogistics:
		return "logistics hub"
	default:
		return "corporate headquarters"
	}
}

// AssetRecord is one curated physical-facility entry, keyed by
// (ticker, layer) in the static asset catalog. Historical averages, when
// present, baseline anomaly comparisons in the report.
type AssetRecord struct {
	Name        string   `json:"name" yaml:"name"`
	Latitude    float64  `json:"lat" yaml:"lat"`
	Longitude   float64  `json:"lon" yaml:"lon"`
	AvgTempC    *float64 `json:"avg_temp_c,omitempty" yaml:"avg_temp_c,omitempty"`
	AvgPrecipMM *float64 `json:"avg_precip_mm,omitempty" yaml:"avg_precip_mm,omitempty"`
}

// ResolvedLocation is the output of location resolution for one request.
// Latitude and longitude are always populated: when every resolution path
// fails a global default coordinate is substituted and Exact is false.
type ResolvedLocation struct {
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Name        string     `json:"name"`
	Layer       AssetLayer `json:"layer"`
	Role        string     `json:"role"`
	Exact       bool       `json:"exact"`               // curated coordinates vs. geocoded/default fallback
	Defaulted   bool       `json:"defaulted,omitempty"` // every resolution path failed; global default coordinate
	AvgTempC    *float64   `json:"avg_temp_c,omitempty"`
	AvgPrecipMM *float64   `json:"avg_precip_mm,omitempty"`
}
