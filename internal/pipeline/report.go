package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/georisk-cli/internal/model"
)

// FormatReport renders the analysis as a human-readable markdown report.
func FormatReport(result *model.AnalysisResult) string {
	var b strings.Builder
	pr := message.NewPrinter(language.English)

	fmt.Fprintf(&b, "# Physical Risk Report: %s\n", result.Profile.Name)
	fmt.Fprintf(&b, "Location: %s (%s)\n", result.Location.Name, result.Location.Role)
	fmt.Fprintf(&b, "Sector: %s\n\n", result.Profile.Sector)

	// Live conditions.
	b.WriteString("## Conditions\n")
	fmt.Fprintf(&b, "- Status: %s RISK\n", result.RiskLevel)
	fmt.Fprintf(&b, "- Precipitation (24h): %.1f mm\n", result.Conditions.PrecipitationMM)
	fmt.Fprintf(&b, "- Max wind speed: %.1f km/h\n", result.Conditions.WindSpeedKPH)
	if result.Conditions.MaxTempC != nil {
		fmt.Fprintf(&b, "- Max temperature: %.1f C\n", *result.Conditions.MaxTempC)
	}
	if !result.Conditions.Degraded {
		if avg := result.Location.AvgPrecipMM; avg != nil {
			fmt.Fprintf(&b, "- Precipitation anomaly: %+.1f mm vs the facility's %.1f mm daily average\n",
				result.Conditions.PrecipitationMM-*avg, *avg)
		}
		if avg := result.Location.AvgTempC; avg != nil && result.Conditions.MaxTempC != nil {
			fmt.Fprintf(&b, "- Temperature anomaly: %+.1f C vs the facility's %.1f C daily max average\n",
				*result.Conditions.MaxTempC-*avg, *avg)
		}
	}
	if result.Conditions.PrecipitationMM > 10 {
		b.WriteString("\nHeavy rainfall may impact local logistics and employee commute.\n")
	} else {
		b.WriteString("\nWeather conditions are optimal for operations.\n")
	}
	b.WriteString("\n")

	// Financial exposure.
	b.WriteString("## Financial Exposure\n")
	fmt.Fprintf(&b, "- Market cap: %s %s\n", pr.Sprintf("%d", int64(result.Profile.MarketCap)), result.Profile.Currency)
	if result.Risk != nil {
		fmt.Fprintf(&b, "- Daily revenue: %s %s\n", pr.Sprintf("%d", int64(result.Risk.DailyRevenue)), result.Profile.Currency)
		fmt.Fprintf(&b, "- Estimated loss today: %s %s\n", pr.Sprintf("%d", int64(result.Risk.EstimatedLoss)), result.Profile.Currency)
		fmt.Fprintf(&b, "- Sector vulnerability: %.1f\n", result.Risk.Vulnerability)
		fmt.Fprintf(&b, "- Disruption: %.0f%% (driver: %s)\n", result.Risk.Disruption*100, result.Risk.Driver)
	} else {
		b.WriteString("- Risk not computable: revenue data unavailable.\n")
	}
	b.WriteString("\n")

	// ESG.
	b.WriteString("## Sustainability\n")
	if result.ESG.Score != nil {
		qualifier := ""
		if result.ESG.Estimated {
			qualifier = " (estimated)"
		}
		fmt.Fprintf(&b, "- ESG risk score: %.1f%s - %s\n", *result.ESG.Score, qualifier, result.ESG.Label)
	} else {
		b.WriteString("- ESG risk score: N/A\n")
	}
	b.WriteString("\n")

	// Notices.
	if len(result.Notices) > 0 {
		b.WriteString("## Notices\n")
		for _, n := range result.Notices {
			fmt.Fprintf(&b, "- %s\n", n.Message)
		}
		b.WriteString("\n")
	}

	// Headlines.
	if len(result.Headlines) > 0 {
		b.WriteString("## Recent Headlines\n")
		for _, h := range result.Headlines {
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", h.Date, h.Title, h.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("Data sources: Open-Meteo and OpenStreetMap live feeds.\n")
	return b.String()
}
