package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

const (
	MsgFetchFailed    = "Failed to fetch weather data."
	MsgGeoUnsupported = "Geolocation is not supported by your browser."
	MsgGeoFailed      = "Unable to retrieve your location."
)

// Fetcher performs the weather lookup for a query.
type Fetcher interface {
	FetchWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error)
}

// Locator reports the device position through one of two continuations.
type Locator interface {
	Available() bool
	CurrentPosition(ctx context.Context, onSuccess func(models.Position), onFailure func(error))
}

// Listener is called with the new state after every transition.
type Listener func(QueryState)

type Option func(*Controller)

func WithLocator(locator Locator) Option {
	return func(c *Controller) {
		c.locator = locator
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.l = l
		}
	}
}

func WithListener(fn Listener) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// WithInitialCity starts the controller in Loading; LoadInitial fetches the city.
func WithInitialCity(name string) Option {
	return func(c *Controller) {
		c.initialCity = strings.TrimSpace(name)
	}
}

// Controller owns the widget QueryState and turns user intents into lookups.
// Every submission takes a new sequence number and only the latest one may
// settle the state.
type Controller struct {
	mu          sync.Mutex
	state       QueryState
	seq         uint64
	fetcher     Fetcher
	locator     Locator
	initialCity string
	listeners   []Listener
	l           *logger.Logger
}

func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		state:   IdleState(),
		fetcher: fetcher,
		l:       logger.Discard("widget"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.initialCity != "" {
		c.state = LoadingState()
	}
	return c
}

func (c *Controller) State() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for future transitions.
func (c *Controller) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// LoadInitial fetches the configured initial city. It does nothing without one.
func (c *Controller) LoadInitial(ctx context.Context) {
	if c.initialCity == "" {
		return
	}
	c.fetch(ctx, models.CityQuery(c.initialCity))
}

// SubmitCityQuery looks up name. Blank input is ignored without a transition.
func (c *Controller) SubmitCityQuery(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	c.fetch(ctx, models.CityQuery(name))
}

// SubmitGeoQuery looks up the weather at the current device position.
func (c *Controller) SubmitGeoQuery(ctx context.Context) {
	if c.locator == nil || !c.locator.Available() {
		c.settle(c.next(), ErrorState(MsgGeoUnsupported))
		return
	}

	seq := c.begin()

	var once sync.Once
	c.locator.CurrentPosition(ctx,
		func(pos models.Position) {
			once.Do(func() {
				if !c.current(seq) {
					c.l.Debug("dropping stale position", map[string]any{"seq": seq})
					return
				}
				c.run(ctx, seq, models.CoordsQuery(pos.Latitude, pos.Longitude))
			})
		},
		func(err error) {
			once.Do(func() {
				c.l.Warning("geolocation failed", map[string]any{"err": errString(err)})
				c.settle(seq, ErrorState(MsgGeoFailed))
			})
		},
	)
}

func (c *Controller) fetch(ctx context.Context, q models.LocationQuery) {
	c.run(ctx, c.begin(), q)
}

// run performs the lookup for submission seq. The state is settled on every
// path out, panics included.
func (c *Controller) run(ctx context.Context, seq uint64, q models.LocationQuery) {
	next := ErrorState(MsgFetchFailed)
	defer func() {
		c.settle(seq, next)
	}()

	snapshot, err := c.fetcher.FetchWeather(ctx, q)
	if err != nil {
		c.l.Warning("weather fetch failed", map[string]any{
			"query": q.String(),
			"err":   err.Error(),
		})
		next = ErrorState(errorMessage(err))
		return
	}
	if snapshot == nil {
		return
	}
	next = SuccessState(snapshot)
}

// begin starts a new submission in Loading.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = LoadingState()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, LoadingState())
	return seq
}

// next starts a new submission without a Loading phase.
func (c *Controller) next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Controller) current(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.seq
}

// settle applies the outcome of submission seq unless a newer one exists.
func (c *Controller) settle(seq uint64, st QueryState) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.l.Debug("dropping stale result", map[string]any{"seq": seq, "state": st.String()})
		return
	}
	c.state = st
	listeners := c.listenersLocked()
	c.mu.Unlock()

	notify(listeners, st)
}

func (c *Controller) listenersLocked() []Listener {
	out := make([]Listener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []Listener, st QueryState) {
	for _, fn := range listeners {
		fn(st)
	}
}

// errorMessage prefers a server supplied detail over the generic text.
func errorMessage(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		if msg := strings.TrimSpace(d.Detail()); msg != "" {
			return msg
		}
	}
	return MsgFetchFailed
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
