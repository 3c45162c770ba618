package repositories

import (
	"context"
	"fmt"
	"net/http"

	"checkweather/config"
	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

// HTTPClient is the part of *http.Client the repositories use.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherReport is what a provider returns for a pair of coordinates.
type WeatherReport struct {
	Current  models.CurrentConditions
	Forecast []models.ForecastDay
	Alert    string
}

type WeatherRepository interface {
	Name() string
	// Geocode resolves a city name. It returns ErrPlaceNotFound when the provider knows no such place.
	Geocode(ctx context.Context, city string) (models.Place, error)
	FetchWeather(ctx context.Context, lat, lon float64) (WeatherReport, error)
}

// forecastDays is the number of days after today kept in a report.
const forecastDays = 7

func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (WeatherRepository, error) {
	httpClient := &http.Client{Timeout: cfg.ProviderTimeout()}

	switch cfg.Weather.Provider {
	case config.ProviderOpenMeteo:
		return NewOpenMeteoRepository(l, httpClient), nil
	case config.ProviderOpenWeatherMap:
		return NewOpenWeatherMapRepository(cfg.Weather.APIKey, l, httpClient)
	default:
		return nil, fmt.Errorf("unknown weather provider %q", cfg.Weather.Provider)
	}
}
