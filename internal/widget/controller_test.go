package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkweather/internal/client"
	"checkweather/internal/models"
)

// fakeFetcher answers every query with the same result. A non-nil gate holds
// calls until it is closed.
type fakeFetcher struct {
	mu       sync.Mutex
	snapshot *models.WeatherSnapshot
	err      error
	gate     chan struct{}
	started  chan struct{}
	queries  []models.LocationQuery
}

func (f *fakeFetcher) FetchWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.snapshot, f.err
}

func (f *fakeFetcher) calls() []models.LocationQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LocationQuery(nil), f.queries...)
}

// fakeLocator answers through the success continuation unless err is set.
type fakeLocator struct {
	available bool
	pos       models.Position
	err       error
	asked     int
}

func (l *fakeLocator) Available() bool {
	return l.available
}

func (l *fakeLocator) CurrentPosition(ctx context.Context, onSuccess func(models.Position), onFailure func(error)) {
	l.asked++
	if l.err != nil {
		onFailure(l.err)
		return
	}
	onSuccess(l.pos)
}

// recorder collects every state passed to a listener.
type recorder struct {
	mu     sync.Mutex
	states []QueryState
}

func (r *recorder) listen(st QueryState) {
	r.mu.Lock()
	r.states = append(r.states, st)
	r.mu.Unlock()
}

func (r *recorder) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, 0, len(r.states))
	for _, st := range r.states {
		out = append(out, st.Status())
	}
	return out
}

func cairo() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Location: "Cairo, EG",
		Current:  models.CurrentConditions{Temperature: 25, Condition: "Clear sky", Icon: "01d", Humidity: 60, WindSpeed: 10.8},
		Forecast: []models.ForecastDay{{Date: "2025-07-26", Icon: "02d", TempMax: 30, TempMin: 20}},
	}
}

func TestNewController_InitialState(t *testing.T) {
	c := NewController(&fakeFetcher{})
	assert.Equal(t, StatusIdle, c.State().Status())

	c = NewController(&fakeFetcher{}, WithInitialCity("Cairo"))
	assert.True(t, c.State().IsLoading())
}

func TestController_LoadInitial(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: cairo()}
	c := NewController(fetcher, WithInitialCity(" Cairo "))

	c.LoadInitial(context.Background())

	assert.Equal(t, StatusSuccess, c.State().Status())
	require.Len(t, fetcher.calls(), 1)
	assert.Equal(t, "Cairo", fetcher.calls()[0].City())

	idle := NewController(fetcher)
	idle.LoadInitial(context.Background())
	assert.Equal(t, StatusIdle, idle.State().Status())
	assert.Len(t, fetcher.calls(), 1)
}

func TestController_SubmitCityQuery_BlankIsIgnored(t *testing.T) {
	for _, input := range []string{"", " ", "\t", "\n  \t"} {
		fetcher := &fakeFetcher{snapshot: cairo()}
		rec := &recorder{}
		c := NewController(fetcher, WithListener(rec.listen))

		c.SubmitCityQuery(context.Background(), input)
		assert.Equal(t, IdleState(), c.State(), "input %q", input)

		c.SubmitCityQuery(context.Background(), "Cairo")
		settled := c.State()
		c.SubmitCityQuery(context.Background(), input)
		assert.Equal(t, settled, c.State(), "input %q", input)

		assert.Len(t, fetcher.calls(), 1, "input %q", input)
		assert.Equal(t, []Status{StatusLoading, StatusSuccess}, rec.statuses())
	}
}

func TestController_SubmitCityQuery_LoadingBeforeSettle(t *testing.T) {
	fetcher := &fakeFetcher{
		snapshot: cairo(),
		gate:     make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	c := NewController(fetcher)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SubmitCityQuery(context.Background(), "Cairo")
	}()

	<-fetcher.started
	assert.True(t, c.State().IsLoading())
	assert.Nil(t, c.State().Snapshot())
	assert.Empty(t, c.State().Message())

	close(fetcher.gate)
	<-done

	st := c.State()
	assert.Equal(t, StatusSuccess, st.Status())
	assert.False(t, st.IsLoading())
	assert.Same(t, fetcher.snapshot, st.Snapshot())
}

func TestController_SubmitCityQuery_Success(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: cairo()}
	rec := &recorder{}
	c := NewController(fetcher)
	c.Subscribe(rec.listen)

	c.SubmitCityQuery(context.Background(), "  Cairo ")

	assert.Equal(t, SuccessState(fetcher.snapshot), c.State())
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, rec.statuses())
	require.Len(t, fetcher.calls(), 1)
	assert.Equal(t, "Cairo", fetcher.calls()[0].City())
}

func TestController_SubmitCityQuery_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured detail", &client.ResponseError{StatusCode: 404, Message: "City 'Atlantis' not found."}, "City 'Atlantis' not found."},
		{"wrapped detail", errors.Join(errors.New("outer"), &client.ResponseError{StatusCode: 404, Message: "D"}), "D"},
		{"no detail", &client.ResponseError{StatusCode: 500}, MsgFetchFailed},
		{"blank detail", &client.ResponseError{StatusCode: 500, Message: "  "}, MsgFetchFailed},
		{"network", errors.New("connection refused"), MsgFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&fakeFetcher{err: tt.err})

			c.SubmitCityQuery(context.Background(), "Atlantis")

			assert.Equal(t, ErrorState(tt.want), c.State())
			assert.False(t, c.State().IsLoading())
			assert.Nil(t, c.State().Snapshot())
		})
	}
}

func TestController_NilSnapshotIsAFailure(t *testing.T) {
	c := NewController(&fakeFetcher{})

	c.SubmitCityQuery(context.Background(), "Cairo")

	assert.Equal(t, ErrorState(MsgFetchFailed), c.State())
}

type panickingFetcher struct{}

func (panickingFetcher) FetchWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error) {
	panic("decoder exploded")
}

func TestController_PanicStillClearsLoading(t *testing.T) {
	c := NewController(panickingFetcher{})

	assert.Panics(t, func() {
		c.SubmitCityQuery(context.Background(), "Cairo")
	})
	assert.Equal(t, ErrorState(MsgFetchFailed), c.State())
}

func TestController_ErrorThenRetry(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("offline")}
	c := NewController(fetcher)

	c.SubmitCityQuery(context.Background(), "Cairo")
	assert.Equal(t, StatusError, c.State().Status())

	fetcher.err = nil
	fetcher.snapshot = cairo()
	c.SubmitCityQuery(context.Background(), "Cairo")
	assert.Equal(t, StatusSuccess, c.State().Status())
	assert.Empty(t, c.State().Message())
}

func TestController_SubmitGeoQuery_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no locator", nil},
		{"unavailable locator", []Option{WithLocator(&fakeLocator{available: false})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{snapshot: cairo()}
			rec := &recorder{}
			c := NewController(fetcher, append(tt.opts, WithListener(rec.listen))...)

			c.SubmitGeoQuery(context.Background())

			assert.Equal(t, ErrorState(MsgGeoUnsupported), c.State())
			assert.Empty(t, fetcher.calls())
			assert.Equal(t, []Status{StatusError}, rec.statuses())
		})
	}
}

func TestController_SubmitGeoQuery_Success(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: cairo()}
	locator := &fakeLocator{available: true, pos: models.Position{Latitude: 30.0, Longitude: 31.2}}
	rec := &recorder{}
	c := NewController(fetcher, WithLocator(locator), WithListener(rec.listen))

	c.SubmitGeoQuery(context.Background())

	assert.Equal(t, StatusSuccess, c.State().Status())
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, rec.statuses())

	require.Len(t, fetcher.calls(), 1)
	q := fetcher.calls()[0]
	lat, lon, ok := q.Coords()
	assert.True(t, ok)
	assert.Equal(t, 30.0, lat)
	assert.Equal(t, 31.2, lon)
	assert.Empty(t, q.City())
	assert.NotContains(t, q.Values(), "city")
}

func TestController_SubmitGeoQuery_LocationFailure(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: cairo()}
	locator := &fakeLocator{available: true, err: errors.New("permission denied")}
	rec := &recorder{}
	c := NewController(fetcher, WithLocator(locator), WithListener(rec.listen))

	c.SubmitGeoQuery(context.Background())

	assert.Equal(t, ErrorState(MsgGeoFailed), c.State())
	assert.Equal(t, []Status{StatusLoading, StatusError}, rec.statuses())
	assert.Empty(t, fetcher.calls())
	assert.Equal(t, 1, locator.asked)
}

func TestController_SubmitGeoQuery_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &client.ResponseError{StatusCode: 500, Message: "upstream down"}}
	locator := &fakeLocator{available: true, pos: models.Position{Latitude: 1, Longitude: 2}}
	c := NewController(fetcher, WithLocator(locator))

	c.SubmitGeoQuery(context.Background())

	assert.Equal(t, ErrorState("upstream down"), c.State())
}

// doubleCallLocator misbehaves by answering through both continuations.
type doubleCallLocator struct{}

func (doubleCallLocator) Available() bool { return true }

func (doubleCallLocator) CurrentPosition(ctx context.Context, onSuccess func(models.Position), onFailure func(error)) {
	onSuccess(models.Position{Latitude: 30, Longitude: 31.2})
	onFailure(errors.New("late failure"))
}

func TestController_SubmitGeoQuery_OnlyFirstContinuationCounts(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: cairo()}
	c := NewController(fetcher, WithLocator(doubleCallLocator{}))

	c.SubmitGeoQuery(context.Background())

	assert.Equal(t, StatusSuccess, c.State().Status())
	assert.Len(t, fetcher.calls(), 1)
}

// routedFetcher answers per city, each behind its own gate.
type routedFetcher struct {
	results map[string]*models.WeatherSnapshot
	gates   map[string]chan struct{}
	started chan string
}

func (f *routedFetcher) FetchWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error) {
	f.started <- q.City()
	<-f.gates[q.City()]
	return f.results[q.City()], nil
}

func TestController_StaleCompletionIsDropped(t *testing.T) {
	fetcher := &routedFetcher{
		results: map[string]*models.WeatherSnapshot{
			"Cairo": {Location: "Cairo, EG"},
			"Oslo":  {Location: "Oslo, NO"},
		},
		gates: map[string]chan struct{}{
			"Cairo": make(chan struct{}),
			"Oslo":  make(chan struct{}),
		},
		started: make(chan string, 2),
	}
	rec := &recorder{}
	c := NewController(fetcher, WithListener(rec.listen))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.SubmitCityQuery(context.Background(), "Cairo")
	}()
	require.Equal(t, "Cairo", <-fetcher.started)

	go func() {
		defer wg.Done()
		c.SubmitCityQuery(context.Background(), "Oslo")
	}()
	require.Equal(t, "Oslo", <-fetcher.started)

	// The newer request settles first, then the older one arrives late.
	close(fetcher.gates["Oslo"])
	require.Eventually(t, func() bool {
		return c.State().Status() == StatusSuccess
	}, time.Second, 5*time.Millisecond)
	close(fetcher.gates["Cairo"])
	wg.Wait()

	assert.Equal(t, "Oslo, NO", c.State().Snapshot().Location)
	assert.Equal(t, []Status{StatusLoading, StatusLoading, StatusSuccess}, rec.statuses())
}

func TestController_GeoUnsupportedSupersedesInFlightFetch(t *testing.T) {
	fetcher := &fakeFetcher{
		snapshot: cairo(),
		gate:     make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	c := NewController(fetcher)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SubmitCityQuery(context.Background(), "Cairo")
	}()
	<-fetcher.started

	c.SubmitGeoQuery(context.Background())
	close(fetcher.gate)
	<-done

	assert.Equal(t, ErrorState(MsgGeoUnsupported), c.State())
}

// deferredLocator keeps the continuations so the test decides when the
// position arrives.
type deferredLocator struct {
	mu        sync.Mutex
	onSuccess func(models.Position)
	onFailure func(error)
}

func (l *deferredLocator) Available() bool { return true }

func (l *deferredLocator) CurrentPosition(ctx context.Context, onSuccess func(models.Position), onFailure func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onSuccess = onSuccess
	l.onFailure = onFailure
}

func (l *deferredLocator) continuations() (func(models.Position), func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.onSuccess, l.onFailure
}

func TestController_LateGeoCompletionAfterCityQuery(t *testing.T) {
	tests := []struct {
		name   string
		answer func(onSuccess func(models.Position), onFailure func(error))
	}{
		{"position", func(onSuccess func(models.Position), _ func(error)) {
			onSuccess(models.Position{Latitude: 59.9, Longitude: 10.7})
		}},
		{"failure", func(_ func(models.Position), onFailure func(error)) {
			onFailure(errors.New("permission denied"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{snapshot: cairo()}
			locator := &deferredLocator{}
			rec := &recorder{}
			c := NewController(fetcher, WithLocator(locator), WithListener(rec.listen))

			c.SubmitGeoQuery(context.Background())
			assert.Equal(t, StatusLoading, c.State().Status())

			c.SubmitCityQuery(context.Background(), "Cairo")
			require.Equal(t, StatusSuccess, c.State().Status())

			onSuccess, onFailure := locator.continuations()
			require.NotNil(t, onSuccess)
			require.NotNil(t, onFailure)
			tt.answer(onSuccess, onFailure)

			assert.Equal(t, "Cairo, EG", c.State().Snapshot().Location)
			assert.NotEqual(t, ErrorState(MsgGeoFailed), c.State())
			assert.Equal(t, []Status{StatusLoading, StatusLoading, StatusSuccess}, rec.statuses())

			calls := fetcher.calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "Cairo", calls[0].City())
		})
	}
}
