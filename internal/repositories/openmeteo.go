package repositories

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

const (
	OpenMeteoBaseURL      = "https://api.open-meteo.com/v1/forecast"
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type OpenMeteoRepository struct {
	BaseURL      string
	GeocodingURL string
	httpClient   HTTPClient
	l            *logger.Logger
}

func NewOpenMeteoRepository(l *logger.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if l == nil {
		l = logger.Discard("open-meteo")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenMeteoRepository{
		BaseURL:      OpenMeteoBaseURL,
		GeocodingURL: OpenMeteoGeocodingURL,
		httpClient:   httpClient,
		l:            l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoResponse struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
}

type OpenMeteoCurrent struct {
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
	WeatherCode        int     `json:"weather_code"`
	IsDay              int     `json:"is_day"`
}

type openMeteoGeocoding struct {
	Results []struct {
		Name        string  `json:"name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		CountryCode string  `json:"country_code"`
	} `json:"results"`
}

func (o *OpenMeteoRepository) Geocode(ctx context.Context, city string) (models.Place, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	o.l.Info("making openmeteo geocoding request", map[string]any{"city": city})

	var response openMeteoGeocoding
	if err := getJSON(ctx, o.httpClient, o.l, o.Name(), o.GeocodingURL+"?"+params.Encode(), &response); err != nil {
		return models.Place{}, err
	}
	if len(response.Results) == 0 {
		return models.Place{}, ErrPlaceNotFound
	}

	r := response.Results[0]
	return models.Place{Name: r.Name, Country: r.CountryCode, Lat: r.Latitude, Lon: r.Longitude}, nil
}

func (o *OpenMeteoRepository) FetchWeather(ctx context.Context, lat, lon float64) (WeatherReport, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code,is_day")
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	params.Set("wind_speed_unit", "kmh")
	params.Set("timezone", "auto")
	// today plus the forecast window
	params.Set("forecast_days", strconv.Itoa(forecastDays+1))

	o.l.Info("making openmeteo API request", map[string]any{"lat": lat, "lon": lon})

	var response struct {
		Current OpenMeteoCurrent  `json:"current"`
		Daily   OpenMeteoResponse `json:"daily"`
	}
	if err := getJSON(ctx, o.httpClient, o.l, o.Name(), o.BaseURL+"?"+params.Encode(), &response); err != nil {
		return WeatherReport{}, err
	}

	o.l.Info("parsed API response", map[string]any{
		"days": len(response.Daily.Time),
	})

	current := wmoCondition(response.Current.WeatherCode)
	return WeatherReport{
		Current: models.CurrentConditions{
			Temperature: response.Current.Temperature2m,
			Condition:   current.description,
			Icon:        current.icon(response.Current.IsDay == 1),
			Humidity:    int(math.Round(response.Current.RelativeHumidity2m)),
			WindSpeed:   response.Current.WindSpeed10m,
		},
		Forecast: dailyForecastOpenMeteo(response.Daily),
	}, nil
}

// dailyForecastOpenMeteo skips today and keeps up to forecastDays days.
func dailyForecastOpenMeteo(daily OpenMeteoResponse) []models.ForecastDay {
	// Find the minimum length to avoid index out of bounds
	minLength := min(len(daily.Time), len(daily.Temperature2mMax), len(daily.Temperature2mMin), len(daily.WeatherCode))

	days := make([]models.ForecastDay, 0, forecastDays)
	for i := 1; i < minLength && i <= forecastDays; i++ {
		cond := wmoCondition(daily.WeatherCode[i])
		days = append(days, models.ForecastDay{
			Date:      daily.Time[i],
			Icon:      cond.icon(true),
			TempMax:   daily.Temperature2mMax[i],
			TempMin:   daily.Temperature2mMin[i],
			Condition: cond.description,
		})
	}
	return days
}

// wmo translates a WMO weather interpretation code into the OpenWeatherMap icon family
// so both providers feed the same icon set.
type wmo struct {
	family      string
	description string
}

func (w wmo) icon(isDay bool) string {
	if isDay {
		return w.family + "d"
	}
	return w.family + "n"
}

var wmoCodes = map[int]wmo{
	0:  {"01", "Clear sky"},
	1:  {"02", "Mainly clear"},
	2:  {"03", "Partly cloudy"},
	3:  {"04", "Overcast"},
	45: {"50", "Fog"},
	48: {"50", "Depositing rime fog"},
	51: {"09", "Light drizzle"},
	53: {"09", "Moderate drizzle"},
	55: {"09", "Dense drizzle"},
	56: {"09", "Light freezing drizzle"},
	57: {"09", "Dense freezing drizzle"},
	61: {"10", "Slight rain"},
	63: {"10", "Moderate rain"},
	65: {"10", "Heavy rain"},
	66: {"10", "Light freezing rain"},
	67: {"10", "Heavy freezing rain"},
	71: {"13", "Slight snow fall"},
	73: {"13", "Moderate snow fall"},
	75: {"13", "Heavy snow fall"},
	77: {"13", "Snow grains"},
	80: {"09", "Slight rain showers"},
	81: {"09", "Moderate rain showers"},
	82: {"09", "Violent rain showers"},
	85: {"13", "Slight snow showers"},
	86: {"13", "Heavy snow showers"},
	95: {"11", "Thunderstorm"},
	96: {"11", "Thunderstorm with slight hail"},
	99: {"11", "Thunderstorm with heavy hail"},
}

func wmoCondition(code int) wmo {
	if w, ok := wmoCodes[code]; ok {
		return w
	}
	return wmo{family: "01", description: "Unknown"}
}
