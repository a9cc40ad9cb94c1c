package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/georisk-cli/internal/assets"
	"github.com/sells-group/georisk-cli/internal/model"
	"github.com/sells-group/georisk-cli/internal/resolver"
	"github.com/sells-group/georisk-cli/internal/store"
	"github.com/sells-group/georisk-cli/pkg/ddg"
	"github.com/sells-group/georisk-cli/pkg/openmeteo"
)

// Offline resolver constructors: nil network clients force the fallback
// tiers, which is exactly what pipeline tests want.

func newOfflineProfiles(catalog *assets.Catalog) *resolver.ProfileResolver {
	return resolver.NewProfileResolver(nil, catalog)
}

func newOfflineLocation(catalog *assets.Catalog) *resolver.LocationResolver {
	return resolver.NewLocationResolver(nil, catalog)
}

func newOfflineESG() *resolver.ESGResolver {
	return resolver.NewESGResolver(nil)
}

// memStore is an in-memory store.Store for pipeline tests.
type memStore struct {
	mu   sync.Mutex
	runs map[string]*model.Run
}

func newMemStore() *memStore {
	return &memStore{runs: make(map[string]*model.Run)}
}

func (m *memStore) CreateRun(ctx context.Context, req model.Request) (*model.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run := &model.Run{
		ID:        uuid.New().String(),
		Request:   req,
		Status:    model.RunStatusQueued,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.runs[run.ID] = run
	return run, nil
}

func (m *memStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return eris.Errorf("run not found: %s", runID)
	}
	run.Status = status
	return nil
}

func (m *memStore) UpdateRunResult(ctx context.Context, runID string, result *model.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return eris.Errorf("run not found: %s", runID)
	}
	run.Result = result
	run.Status = model.RunStatusComplete
	return nil
}

func (m *memStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return nil, eris.Errorf("run not found: %s", runID)
	}
	return run, nil
}

func (m *memStore) ListRuns(ctx context.Context, filter store.RunFilter) ([]model.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var runs []model.Run
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	return runs, nil
}

func (m *memStore) Migrate(ctx context.Context) error { return nil }
func (m *memStore) Close() error                      { return nil }

// fakeWeather is a canned openmeteo.Client.
type fakeWeather struct {
	daily *openmeteo.Daily
	err   error
	calls int
}

func (f *fakeWeather) Forecast(ctx context.Context, lat, lon float64) (*openmeteo.Daily, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

// fakeNews is a canned ddg.Client that records the last query.
type fakeNews struct {
	results   []ddg.Result
	err       error
	lastQuery string
	lastMax   int
}

func (f *fakeNews) News(ctx context.Context, query string, max int) ([]ddg.Result, error) {
	f.lastQuery = query
	f.lastMax = max
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
