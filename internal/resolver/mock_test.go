package resolver

import (
	"context"
	"sync/atomic"

	"github.com/sells-group/georisk-cli/pkg/nominatim"
	"github.com/sells-group/georisk-cli/pkg/yahoo"
)

// fakeMarket is a hand-rolled yahoo.Client stub.
type fakeMarket struct {
	summary      *yahoo.Summary
	summaryErr   error
	esg          float64
	esgErr       error
	summaryCalls atomic.Int32
	esgCalls     atomic.Int32
}

func (f *fakeMarket) Summary(ctx context.Context, symbol string) (*yahoo.Summary, error) {
	f.summaryCalls.Add(1)
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeMarket) Sustainability(ctx context.Context, symbol string) (float64, error) {
	f.esgCalls.Add(1)
	if f.esgErr != nil {
		return 0, f.esgErr
	}
	return f.esg, nil
}

// fakeGeocoder is a hand-rolled nominatim.Client stub.
type fakeGeocoder struct {
	result *nominatim.Result
	err    error
	calls  atomic.Int32
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (*nominatim.Result, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
