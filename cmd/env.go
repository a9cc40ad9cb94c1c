package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/pipeline"
	"github.com/sells-group/georisk-cli/internal/resolver"
	"github.com/sells-group/georisk-cli/internal/store"
	"github.com/sells-group/georisk-cli/pkg/ddg"
	"github.com/sells-group/georisk-cli/pkg/nominatim"
	"github.com/sells-group/georisk-cli/pkg/openmeteo"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

// pipelineEnv holds the initialized store, catalog, and pipeline needed
// by the analyze/batch/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Catalog  *assets.Catalog
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.Path
		if dsn == "" {
			dsn = "georisk.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initPipeline sets up the store, the curated catalog, all API clients,
// and builds the Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	catalog, err := assets.Load()
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "load asset catalog")
	}

	// Live market source (optional: offline mode forces the curated tier).
	var market yahoo.Client
	if !cfg.Market.Offline {
		market = yahoo.NewClient(
			yahoo.WithBaseURL(cfg.Market.BaseURL),
			yahoo.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Market.TimeoutSecs) * time.Second}),
		)
	} else {
		zap.L().Info("market source disabled, using curated snapshots")
	}

	geocoder := nominatim.NewClient(
		nominatim.WithBaseURL(cfg.Geocode.BaseURL),
		nominatim.WithUserAgent(cfg.Geocode.UserAgent),
		nominatim.WithRateLimit(cfg.Geocode.RatePerSec),
		nominatim.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second}),
	)

	weather := openmeteo.NewCachedClient(
		openmeteo.NewClient(
			openmeteo.WithBaseURL(cfg.Weather.BaseURL),
			openmeteo.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Weather.TimeoutSecs) * time.Second}),
		),
		openmeteo.NewCache(cfg.Weather.CacheSize, cfg.Weather.CacheTTL()),
	)

	var news ddg.Client
	if !cfg.News.Disabled {
		news = ddg.NewClient(
			ddg.WithBaseURL(cfg.News.BaseURL),
			ddg.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.News.TimeoutSecs) * time.Second}),
		)
	}

	p := pipeline.New(cfg, st, catalog,
		resolver.NewProfileResolver(market, catalog),
		resolver.NewLocationResolver(geocoder, catalog),
		resolver.NewESGResolver(market),
		weather, news,
	)

	return &pipelineEnv{Store: st, Catalog: catalog, Pipeline: p}, nil
}
