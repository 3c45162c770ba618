package weather

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"checkweather/internal/models"
	"checkweather/internal/repositories"
	"checkweather/pkg/logger"
)

// Cache stores snapshots by query key. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.WeatherSnapshot, error)
	Set(ctx context.Context, key string, snapshot *models.WeatherSnapshot) error
}

// LookupError is a problem with the query itself rather than with the system.
type LookupError struct {
	msg string
}

func (e *LookupError) Error() string {
	return e.msg
}

var errLocationRequired = &LookupError{msg: "Either city or latitude/longitude must be provided."}

// WeatherService resolves location queries to weather snapshots.
type WeatherService struct {
	repo  repositories.WeatherRepository
	cache Cache
	l     *logger.Logger
}

// NewWeatherService builds the service. cache may be nil to disable caching.
func NewWeatherService(repo repositories.WeatherRepository, cache Cache, l *logger.Logger) *WeatherService {
	if l == nil {
		l = logger.Discard("weather")
	}
	return &WeatherService{
		repo:  repo,
		cache: cache,
		l:     l,
	}
}

// GetWeather returns the snapshot for q, from the cache when possible.
func (s *WeatherService) GetWeather(ctx context.Context, q models.LocationQuery) (*models.WeatherSnapshot, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	start := time.Now()
	s.l.Info("starting weather fetch", map[string]any{
		"query":    q.String(),
		"provider": s.repo.Name(),
	})

	location, lat, lon, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.FetchWeather(ctx, lat, lon)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch weather from %s", s.repo.Name())
	}

	snapshot := &models.WeatherSnapshot{
		Location: location,
		Current:  report.Current,
		Forecast: report.Forecast,
		Alert:    report.Alert,
	}

	s.l.Info("completed weather fetch", map[string]any{
		"location": snapshot.Location,
		"days":     len(snapshot.Forecast),
		"took":     time.Since(start).String(),
	})

	s.toCache(ctx, key, snapshot)

	return snapshot, nil
}

// resolve turns the query into a display label and coordinates.
func (s *WeatherService) resolve(ctx context.Context, q models.LocationQuery) (string, float64, float64, error) {
	if lat, lon, ok := q.Coords(); ok {
		return q.String(), lat, lon, nil
	}

	place, err := s.repo.Geocode(ctx, q.City())
	if errors.Is(err, repositories.ErrPlaceNotFound) {
		return "", 0, 0, &LookupError{msg: fmt.Sprintf("City '%s' not found.", q.City())}
	}
	if err != nil {
		return "", 0, 0, errors.Wrapf(err, "geocode %q", q.City())
	}

	return place.Label(), place.Lat, place.Lon, nil
}

func (s *WeatherService) fromCache(ctx context.Context, key string) *models.WeatherSnapshot {
	if s.cache == nil {
		return nil
	}

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.l.Warning("cache read failed", map[string]any{"key": key, "err": err.Error()})
		return nil
	}
	if cached != nil {
		s.l.Debug("cache hit", map[string]any{"key": key})
	}
	return cached
}

func (s *WeatherService) toCache(ctx context.Context, key string, snapshot *models.WeatherSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, snapshot); err != nil {
		s.l.Warning("cache write failed", map[string]any{"key": key, "err": err.Error()})
	}
}

func validate(q models.LocationQuery) error {
	if q.IsZero() {
		return errLocationRequired
	}

	lat, lon, ok := q.Coords()
	if !ok {
		return nil
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return &LookupError{msg: "Latitude must be between -90 and 90."}
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return &LookupError{msg: "Longitude must be between -180 and 180."}
	}
	return nil
}
