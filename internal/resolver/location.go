package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/pkg/nominatim"
)

// Global fallback coordinate (Oslo), substituted when every other
// resolution path fails. The weather fetch must never receive an absent
// coordinate.
const (
	defaultLatitude  = 59.91
	defaultLongitude = 10.75
)

// LocationResolver resolves (ticker, layer) to coordinates and a display
// name, preferring the curated facility table over city-level geocoding.
type LocationResolver struct {
	geocoder nominatim.Client
	catalog  *assets.Catalog
}

// NewLocationResolver creates a location resolver. A nil geocoder skips
// straight to the default coordinate for non-curated layers.
func NewLocationResolver(geocoder nominatim.Client, catalog *assets.Catalog) *LocationResolver {
	return &LocationResolver{geocoder: geocoder, catalog: catalog}
}

// Resolve returns a location with latitude and longitude always populated.
// Curated coordinates, when present for (ticker, layer), take precedence
// over anything the geocoder would say. The HQ layer is never curated.
func (r *LocationResolver) Resolve(ctx context.Context, ticker string, layer model.AssetLayer, profile model.FinancialProfile) model.ResolvedLocation {
	log := zap.L().With(zap.String("ticker", ticker), zap.String("layer", string(layer)))

	if layer != model.LayerHQ {
		if rec, ok := r.catalog.Asset(ticker, layer); ok {
			log.Debug("location: curated facility match", zap.String("facility", rec.Name))
			return model.ResolvedLocation{
				Latitude:    rec.Latitude,
				Longitude:   rec.Longitude,
				Name:        rec.Name,
				Layer:       layer,
				Role:        layer.RoleLabel(),
				Exact:       true,
				AvgTempC:    rec.AvgTempC,
				AvgPrecipMM: rec.AvgPrecipMM,
			}
		}
		// No precise facility data; fall through to the HQ path as a
		// regional proxy (Exact stays false).
		log.Info("location: no curated facility, using HQ as regional proxy")
	}

	loc := model.ResolvedLocation{
		Name:  fmt.Sprintf("%s (HQ)", profile.City),
		Layer: layer,
		Role:  layer.RoleLabel(),
	}

	if profile.City != model.UnknownName && r.geocoder != nil {
		query := fmt.Sprintf("%s, %s", profile.City, profile.Country)
		result, err := r.geocoder.Geocode(ctx, query)
		if err == nil {
			loc.Latitude = result.Latitude
			loc.Longitude = result.Longitude
			log.Debug("location: geocoded HQ city", zap.String("query", query))
			return loc
		}
		log.Warn("location: geocoding failed, using default coordinate",
			zap.String("query", query),
			zap.String("failure", string(Classify(err))),
			zap.Error(err),
		)
	}

	loc.Latitude = defaultLatitude
	loc.Longitude = defaultLongitude
	loc.Defaulted = true
	return loc
}
