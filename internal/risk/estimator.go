// Package risk computes the parametric revenue-at-risk estimate from a
// financial profile and observed environmental conditions. Everything in
// this package is a pure function of its inputs.
package risk

import (
	"strings"

	"github.com/sells-group/georisk-cli/internal/model"
)

// Sector vulnerability factors. Physical-asset-heavy sectors carry full
// exposure, asset-light sectors a fraction of it.
const (
	vulnerabilityHeavy   = 1.0
	vulnerabilityLight   = 0.3
	vulnerabilityDefault = 0.5
)

var (
	heavySectors = []string{"Energy", "Basic Materials", "Industrials", "Utilities"}
	lightSectors = []string{"Technology", "Communication", "Financial"}
)

// Vulnerability maps a free-text sector classification to its exposure
// factor by keyword substring match, first matching rule wins.
func Vulnerability(sector string) float64 {
	for _, kw := range heavySectors {
		if strings.Contains(sector, kw) {
			return vulnerabilityHeavy
		}
	}
	for _, kw := range lightSectors {
		if strings.Contains(sector, kw) {
			return vulnerabilityLight
		}
	}
	return vulnerabilityDefault
}

// precipitationDisruption is a step function with inclusive lower bounds.
func precipitationDisruption(rainMM float64) float64 {
	switch {
	case rainMM >= 50:
		return 0.50
	case rainMM >= 20:
		return 0.15
	case rainMM >= 5:
		return 0.02
	default:
		return 0
	}
}

// heatDisruption models heat stress when a max temperature is observed.
func heatDisruption(maxTempC float64) float64 {
	switch {
	case maxTempC > 40:
		return 0.25
	case maxTempC > 32:
		return 0.08
	default:
		return 0
	}
}

// Estimate combines profile and conditions into a daily revenue-loss
// estimate. Returns nil when revenue is absent: no revenue means the risk
// figure is not computable, which is distinct from zero risk.
func Estimate(profile model.FinancialProfile, cond model.EnvironmentalConditions) *model.RiskEstimate {
	if profile.Revenue == nil {
		return nil
	}

	rain := precipitationDisruption(cond.PrecipitationMM)
	heat := 0.0
	if cond.MaxTempC != nil {
		heat = heatDisruption(*cond.MaxTempC)
	}

	disruption := rain
	driver := model.DriverPrecipitation
	if heat > rain {
		disruption = heat
		driver = model.DriverHeat
	}
	if disruption == 0 {
		driver = model.DriverNone
	}

	daily := *profile.Revenue / 365
	return &model.RiskEstimate{
		DailyRevenue:  daily,
		EstimatedLoss: daily * Vulnerability(profile.Sector) * disruption,
		Vulnerability: Vulnerability(profile.Sector),
		Disruption:    disruption,
		Driver:        driver,
	}
}
