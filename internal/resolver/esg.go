package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

// ESGResolver resolves a sustainability risk score: a measured score from
// the live source when the profile came from the live tier, otherwise the
// estimate embedded in the profile, otherwise "N/A". Never fabricates a
// number.
type ESGResolver struct {
	market yahoo.Client
}

// NewESGResolver creates an ESG resolver. A nil market client disables the
// live tier.
func NewESGResolver(market yahoo.Client) *ESGResolver {
	return &ESGResolver{market: market}
}

// Resolve returns the best available ESG rating for the ticker.
func (r *ESGResolver) Resolve(ctx context.Context, ticker string, profile model.FinancialProfile, tier model.Tier) model.ESGRating {
	if tier == model.TierLive && r.market != nil {
		score, err := r.market.Sustainability(ctx, ticker)
		if err == nil {
			return model.ESGRating{Score: &score, Label: ESGLabel(score)}
		}
		zap.L().Warn("esg: live score unavailable, falling back to estimate",
			zap.String("ticker", ticker),
			zap.String("failure", string(Classify(err))),
			zap.Error(err),
		)
	}

	if profile.ESGEstimate != nil {
		score := *profile.ESGEstimate
		return model.ESGRating{Score: &score, Label: ESGLabel(score), Estimated: true}
	}

	return model.ESGRating{Label: "N/A"}
}

// ESGLabel maps a Sustainalytics-style total ESG risk score to its
// qualitative bucket.
func ESGLabel(score float64) string {
	switch {
	case score < 10:
		return "Negligible"
	case score < 20:
		return "Low Risk"
	case score < 30:
		return "Medium Risk"
	case score < 40:
		return "High Risk"
	default:
		return "Severe Risk"
	}
}
