// Package pipeline orchestrates one geo-risk analysis: profile resolution,
// asset location, live weather, ESG scoring, revenue-at-risk estimation,
// and the headline lookup. Resolvers never fail; the pipeline only ever
// observes degraded-confidence results and surfaces them as notices.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/config"
	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/internal/resolver"
	"github.com/sells-group/georisk-cli/internal/risk"
	"github.com/sells-group/georisk-cli/internal/store"
	"github.com/sells-group/georisk-cli/pkg/ddg"
	"github.com/sells-group/georisk-cli/pkg/openmeteo"
)

// Pipeline orchestrates the analysis phases for a single request.
type Pipeline struct {
	cfg      *config.Config
	store    store.Store
	catalog  *assets.Catalog
	profiles *resolver.ProfileResolver
	location *resolver.LocationResolver
	esg      *resolver.ESGResolver
	weather  openmeteo.Client
	news     ddg.Client
}

// New creates a Pipeline with all dependencies. The weather and news
// clients may be nil, in which case those phases degrade gracefully.
func New(
	cfg *config.Config,
	st store.Store,
	catalog *assets.Catalog,
	profiles *resolver.ProfileResolver,
	location *resolver.LocationResolver,
	esg *resolver.ESGResolver,
	weather openmeteo.Client,
	news ddg.Client,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    st,
		catalog:  catalog,
		profiles: profiles,
		location: location,
		esg:      esg,
		weather:  weather,
		news:     news,
	}
}

// NormalizeTicker canonicalizes the requested symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Run executes the full analysis for a single ticker and asset layer.
func (p *Pipeline) Run(ctx context.Context, req model.Request) (*model.AnalysisResult, error) {
	req.Ticker = NormalizeTicker(req.Ticker)
	log := zap.L().With(zap.String("ticker", req.Ticker), zap.String("layer", string(req.Layer)))
	log.Info("pipeline: starting analysis")

	result := &model.AnalysisResult{Request: req}

	run, err := p.store.CreateRun(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}
	result.RunID = run.ID

	setStatus := func(status model.RunStatus) {
		if statusErr := p.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}

	// Phase tracking helper with mutex for concurrent access.
	var phasesMu sync.Mutex
	trackPhase := func(name string, fn func() (*model.PhaseResult, error)) {
		start := time.Now()
		phaseResult, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		if phaseResult == nil {
			phaseResult = &model.PhaseResult{}
		}
		phaseResult.Name = name
		phaseResult.Duration = duration

		if fnErr != nil {
			phaseResult.Status = model.PhaseStatusFailed
			phaseResult.Error = fnErr.Error()
			log.Warn("pipeline: phase degraded",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		} else if phaseResult.Status == "" {
			phaseResult.Status = model.PhaseStatusComplete
			log.Info("pipeline: phase complete",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
			)
		}

		phasesMu.Lock()
		result.Phases = append(result.Phases, *phaseResult)
		phasesMu.Unlock()
	}

	// ===== Phase 1: Financial profile =====
	setStatus(model.RunStatusResolving)
	trackPhase("1_profile", func() (*model.PhaseResult, error) {
		result.Profile, result.Tier = p.profiles.Resolve(ctx, req.Ticker)
		return &model.PhaseResult{
			Metadata: map[string]any{"tier": string(result.Tier)},
		}, nil
	})

	// ===== Phase 2: Location + weather, ESG, and news in parallel =====
	setStatus(model.RunStatusFetching)

	g, gCtx := errgroup.WithContext(ctx)

	// 2a/2b: location, then weather at the resolved coordinate.
	g.Go(func() error {
		trackPhase("2a_location", func() (*model.PhaseResult, error) {
			result.Location = p.location.Resolve(gCtx, req.Ticker, req.Layer, result.Profile)
			return &model.PhaseResult{
				Metadata: map[string]any{
					"exact":     result.Location.Exact,
					"defaulted": result.Location.Defaulted,
				},
			}, nil
		})
		trackPhase("2b_weather", func() (*model.PhaseResult, error) {
			result.Conditions = p.fetchConditions(gCtx, result.Location)
			if result.Conditions.Degraded {
				return &model.PhaseResult{
					Metadata: map[string]any{"degraded": true},
				}, nil
			}
			return nil, nil
		})
		return nil
	})

	// 2c: ESG.
	g.Go(func() error {
		trackPhase("2c_esg", func() (*model.PhaseResult, error) {
			result.ESG = p.esg.Resolve(gCtx, req.Ticker, result.Profile, result.Tier)
			return &model.PhaseResult{
				Metadata: map[string]any{"estimated": result.ESG.Estimated},
			}, nil
		})
		return nil
	})

	// 2d: climate news headlines.
	g.Go(func() error {
		trackPhase("2d_news", func() (*model.PhaseResult, error) {
			result.Headlines = p.fetchHeadlines(gCtx, req.Ticker, result.Profile.Name)
			return &model.PhaseResult{
				Metadata: map[string]any{"headlines": len(result.Headlines)},
			}, nil
		})
		return nil
	})

	// Errors are tracked per-phase and never fail the pipeline.
	_ = g.Wait()

	// ===== Phase 3: Risk scoring =====
	setStatus(model.RunStatusScoring)
	trackPhase("3_risk", func() (*model.PhaseResult, error) {
		result.Risk = risk.Estimate(result.Profile, result.Conditions)
		result.RiskLevel = risk.Level(result.Conditions)
		if result.Risk == nil {
			return &model.PhaseResult{
				Status:   model.PhaseStatusSkipped,
				Metadata: map[string]any{"reason": "no revenue baseline"},
			}, nil
		}
		return &model.PhaseResult{
			Metadata: map[string]any{
				"driver":     string(result.Risk.Driver),
				"disruption": result.Risk.Disruption,
			},
		}, nil
	})

	result.Notices = p.buildNotices(result)
	result.Report = FormatReport(result)

	if err := p.store.UpdateRunResult(ctx, run.ID, result); err != nil {
		log.Warn("pipeline: failed to persist result", zap.Error(err))
	}

	log.Info("pipeline: analysis complete",
		zap.String("tier", string(result.Tier)),
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Int("notices", len(result.Notices)),
	)
	return result, nil
}

// fetchConditions retrieves today's weather at the resolved coordinate.
// Any failure degrades to zero-valued conditions rather than propagating.
func (p *Pipeline) fetchConditions(ctx context.Context, loc model.ResolvedLocation) model.EnvironmentalConditions {
	if p.weather == nil {
		return model.EnvironmentalConditions{Degraded: true}
	}

	daily, err := p.weather.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		zap.L().Warn("pipeline: weather fetch failed, using zero conditions",
			zap.Float64("lat", loc.Latitude),
			zap.Float64("lon", loc.Longitude),
			zap.Error(err),
		)
		return model.EnvironmentalConditions{Degraded: true}
	}

	return model.EnvironmentalConditions{
		PrecipitationMM: daily.PrecipitationMM,
		WindSpeedKPH:    daily.WindSpeedKPH,
		MaxTempC:        daily.MaxTempC,
	}
}

// buildNotices derives the user-visible degradation notices from the
// assembled result.
func (p *Pipeline) buildNotices(result *model.AnalysisResult) []model.Notice {
	var notices []model.Notice

	switch result.Tier {
	case model.TierCurated:
		notices = append(notices, model.Notice{
			Code:    model.NoticeOfflineSnapshot,
			Message: "Live market data unavailable; using a curated financial snapshot.",
		})
	case model.TierSynthetic:
		notices = append(notices, model.Notice{
			Code:    model.NoticeOfflineSnapshot,
			Message: "No financial data found for this ticker; using a simulated profile.",
		})
	}

	if result.Request.Layer != model.LayerHQ && !result.Location.Exact {
		notices = append(notices, model.Notice{
			Code:    model.NoticeHQProxy,
			Message: fmt.Sprintf("No curated %s record; showing regional risk at the headquarters city.", result.Request.Layer),
		})
	}
	if result.Location.Defaulted {
		notices = append(notices, model.Notice{
			Code:    model.NoticeDefaultLocation,
			Message: "Location could not be resolved; using the global default coordinate.",
		})
	}
	if result.Conditions.Degraded {
		notices = append(notices, model.Notice{
			Code:    model.NoticeWeatherDegraded,
			Message: "Live weather unavailable; conditions shown as calm.",
		})
	}
	if result.Risk == nil {
		notices = append(notices, model.Notice{
			Code:    model.NoticeRiskUnavailable,
			Message: "Revenue data unavailable; risk not computable.",
		})
	}
	return notices
}
