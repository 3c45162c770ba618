package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

const (
	OpenWeatherMapGeoURL     = "https://api.openweathermap.org/geo/1.0/direct"
	OpenWeatherMapOneCallURL = "https://api.openweathermap.org/data/3.0/onecall"

	// msToKmh converts the metric wind speed (m/s) to km/h.
	msToKmh = 3.6
)

type OpenWeatherMapRepository struct {
	APIKey     string
	GeoURL     string
	OneCallURL string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if l == nil {
		l = logger.Discard("openweathermap")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenWeatherMapRepository{
		APIKey:     apiKey,
		GeoURL:     OpenWeatherMapGeoURL,
		OneCallURL: OpenWeatherMapOneCallURL,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (w *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

type owmPlace struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type OneCallResponse struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TimezoneOffset int64   `json:"timezone_offset"`
	Current        struct {
		Dt        int64          `json:"dt"`
		Temp      float64        `json:"temp"`
		Humidity  int            `json:"humidity"`
		WindSpeed float64        `json:"wind_speed"`
		Weather   []owmCondition `json:"weather"`
	} `json:"current"`
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Weather []owmCondition `json:"weather"`
	} `json:"daily"`
	Alerts []struct {
		Event string `json:"event"`
	} `json:"alerts"`
}

func (w *OpenWeatherMapRepository) Geocode(ctx context.Context, city string) (models.Place, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", "1")
	params.Set("appid", w.APIKey)

	w.l.Info("making openweathermap geocoding request", map[string]any{"city": city})

	var places []owmPlace
	if err := getJSON(ctx, w.httpClient, w.l, w.Name(), w.GeoURL+"?"+params.Encode(), &places); err != nil {
		return models.Place{}, err
	}
	if len(places) == 0 {
		return models.Place{}, ErrPlaceNotFound
	}

	p := places[0]
	return models.Place{Name: p.Name, Country: p.Country, Lat: p.Lat, Lon: p.Lon}, nil
}

func (w *OpenWeatherMapRepository) FetchWeather(ctx context.Context, lat, lon float64) (WeatherReport, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", w.APIKey)
	params.Set("units", "metric")
	params.Set("exclude", "minutely,hourly")

	w.l.Info("making openweathermap onecall request", map[string]any{"lat": lat, "lon": lon})

	var response OneCallResponse
	if err := getJSON(ctx, w.httpClient, w.l, w.Name(), w.OneCallURL+"?"+params.Encode(), &response); err != nil {
		return WeatherReport{}, err
	}

	report := oneCallReport(response)

	w.l.Info("parsed openweathermap response", map[string]any{
		"days":  len(report.Forecast),
		"alert": report.Alert,
	})

	return report, nil
}

// oneCallReport skips today's daily entry and keeps the following forecastDays days.
func oneCallReport(response OneCallResponse) WeatherReport {
	current := firstCondition(response.Current.Weather)

	report := WeatherReport{
		Current: models.CurrentConditions{
			Temperature: response.Current.Temp,
			Condition:   capitalize(current.Description),
			Icon:        current.Icon,
			Humidity:    response.Current.Humidity,
			WindSpeed:   response.Current.WindSpeed * msToKmh,
		},
		Forecast: make([]models.ForecastDay, 0, forecastDays),
	}

	for i := 1; i < len(response.Daily) && i <= forecastDays; i++ {
		day := response.Daily[i]
		cond := firstCondition(day.Weather)
		report.Forecast = append(report.Forecast, models.ForecastDay{
			Date:      localDate(day.Dt, response.TimezoneOffset),
			Icon:      cond.Icon,
			TempMax:   day.Temp.Max,
			TempMin:   day.Temp.Min,
			Condition: capitalize(cond.Description),
		})
	}

	if len(response.Alerts) > 0 {
		report.Alert = response.Alerts[0].Event
	}

	return report
}

func firstCondition(conditions []owmCondition) owmCondition {
	if len(conditions) == 0 {
		return owmCondition{}
	}
	return conditions[0]
}

// localDate formats a unix timestamp as a calendar date at the location's UTC offset.
func localDate(unix, offsetSeconds int64) string {
	return time.Unix(unix+offsetSeconds, 0).UTC().Format(models.DateLayout)
}
