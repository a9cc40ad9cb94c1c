package model

// Driver names the stress factor responsible for the current disruption
// fraction.
type Driver string

const (
	DriverPrecipitation Driver = "precipitation"
	DriverHeat          Driver = "heat"
	DriverNone          Driver = "none"
)

// RiskEstimate is the output of the parametric revenue-at-risk model.
// EstimatedLoss = DailyRevenue × Vulnerability × Disruption, always
// non-negative. The estimate as a whole is absent (nil) when the profile
// carries no revenue baseline.
type RiskEstimate struct {
	DailyRevenue  float64 `json:"daily_revenue"`
	EstimatedLoss float64 `json:"estimated_loss"`
	Vulnerability float64 `json:"vulnerability"`
	Disruption    float64 `json:"disruption"` // fractional capacity loss for one day, in [0,1]
	Driver        Driver  `json:"driver"`
}

// RiskLevel is the qualitative severity bucket for the report narrative.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Headline is a single news search result with qualitative risk context.
type Headline struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Source string `json:"source"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}
