package risk

import "github.com/sells-group/georisk-cli/internal/model"

// Level grades the raw weather severity for the report headline,
// independent of any financial exposure.
func Level(cond model.EnvironmentalConditions) model.RiskLevel {
	if cond.PrecipitationMM > 30 || cond.WindSpeedKPH > 80 {
		return model.RiskHigh
	}
	if cond.PrecipitationMM > 10 {
		return model.RiskModerate
	}
	return model.RiskLow
}
