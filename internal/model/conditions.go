package model

// EnvironmentalConditions holds today's weather aggregates at a resolved
// location. All numeric fields default to zero when the fetch fails;
// Degraded distinguishes a failed fetch from a genuinely calm day, since
// the numbers alone cannot.
type EnvironmentalConditions struct {
	PrecipitationMM float64  `json:"precipitation_mm"`
	WindSpeedKPH    float64  `json:"wind_speed_kph"`
	MaxTempC        *float64 `json:"max_temp_c,omitempty"`
	Degraded        bool     `json:"degraded,omitempty"`
}
