package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

// Synthetic placeholder financials, used when every other tier failed so
// the pipeline never receives an absent profile.
const (
	syntheticSector    = "Industrial (Unknown)"
	syntheticMarketCap = 10_000_000_000
	syntheticRevenue   = 5_000_000_000
	syntheticBeta      = 1.0
	syntheticESG       = 25.0
)

// ProfileResolver resolves a ticker to a fully-populated financial
// profile: live fetch, then curated exact, then curated fuzzy, then a
// synthetic default. First success wins; it never fails.
type ProfileResolver struct {
	market  yahoo.Client
	catalog *assets.Catalog
}

// NewProfileResolver creates a profile resolver. A nil market client
// disables the live tier (offline mode).
func NewProfileResolver(market yahoo.Client, catalog *assets.Catalog) *ProfileResolver {
	return &ProfileResolver{market: market, catalog: catalog}
}

// Resolve returns the best available profile for the ticker and the tier
// it came from. The ticker is expected to be uppercase already.
func (r *ProfileResolver) Resolve(ctx context.Context, ticker string) (model.FinancialProfile, model.Tier) {
	log := zap.L().With(zap.String("ticker", ticker))

	// Tier 1: live fetch.
	if r.market != nil {
		summary, err := r.market.Summary(ctx, ticker)
		if err == nil {
			p := model.FinancialProfile{
				Name:      summary.Name,
				Sector:    summary.Sector,
				MarketCap: summary.MarketCap,
				Revenue:   summary.Revenue,
				Currency:  summary.Currency,
				City:      summary.City,
				Country:   summary.Country,
				Beta:      summary.Beta,
			}
			p.FillDefaults()
			log.Debug("profile: live fetch succeeded")
			return p, model.TierLive
		}
		log.Warn("profile: live fetch failed, falling back",
			zap.String("failure", string(Classify(err))),
			zap.Error(err),
		)
	}

	// Tier 2: curated exact match.
	if p, ok := r.catalog.Profile(ticker); ok {
		log.Debug("profile: curated exact match")
		return p, model.TierCurated
	}

	// Tier 3: curated fuzzy match.
	if p, matched, ok := r.catalog.FuzzyProfile(ticker); ok {
		log.Info("profile: curated fuzzy match", zap.String("matched", matched))
		return p, model.TierCurated
	}

	// Tier 4: synthetic default.
	log.Info("profile: no data for ticker, using synthetic placeholder")
	return syntheticProfile(ticker), model.TierSynthetic
}

func syntheticProfile(ticker string) model.FinancialProfile {
	rev := float64(syntheticRevenue)
	esg := syntheticESG
	return model.FinancialProfile{
		Name:        fmt.Sprintf("%s (Simulated)", strings.ToUpper(ticker)),
		Sector:      syntheticSector,
		MarketCap:   syntheticMarketCap,
		Revenue:     &rev,
		Currency:    model.DefaultCurrency,
		City:        model.UnknownName,
		Country:     model.UnknownName,
		Beta:        syntheticBeta,
		ESGEstimate: &esg,
	}
}
