package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkweather/internal/client"
	"checkweather/internal/models"
	"checkweather/pkg/logger"
)

func render(t *testing.T, st QueryState) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, st))
	return buf.String()
}

func TestRender_States(t *testing.T) {
	assert.Empty(t, render(t, IdleState()))
	assert.Equal(t, "Loading weather...\n", render(t, LoadingState()))
	assert.Equal(t, "Error: Unable to retrieve your location.\n", render(t, ErrorState(MsgGeoFailed)))
}

func TestRender_Snapshot(t *testing.T) {
	out := render(t, SuccessState(&models.WeatherSnapshot{
		Location: "Cairo, EG",
		Current:  models.CurrentConditions{Temperature: 25.4, Condition: "Clear sky", Icon: "01d", Humidity: 60, WindSpeed: 10.84},
		Forecast: []models.ForecastDay{
			{Date: "2025-07-26", Icon: "02d", TempMax: 30.2, TempMin: 20.4},
			{Date: "not-a-date", Icon: "zz", TempMax: 1, TempMin: -1},
		},
		Alert: "Heat Advisory",
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"Cairo, EG",
		"☀  25°C  Clear sky",
		"Humidity: 60%  Wind: 10.8 km/h",
		"Alert: Heat Advisory",
		"",
		"7-Day Forecast",
		"Sat  ⛅  30° / 20°",
		"not-a-date  ☀  1° / -1°",
	}, lines)
}

func TestRenderWith_ClassGlyphs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderWith(&buf, SuccessState(&models.WeatherSnapshot{
		Location: "Bergen, NO",
		Current:  models.CurrentConditions{Temperature: 12, Condition: "Light rain", Icon: "10n", Humidity: 88, WindSpeed: 20},
		Forecast: []models.ForecastDay{{Date: "2025-07-26", Icon: "11d", TempMax: 14, TempMin: 9}},
	}), ClassGlyphs))

	out := buf.String()
	assert.Contains(t, out, "wi-night-rain  12°C  Light rain")
	assert.Contains(t, out, "Sat  wi-thunderstorm  14° / 9°")
}

func TestRender_NoAlertNoForecast(t *testing.T) {
	out := render(t, SuccessState(&models.WeatherSnapshot{
		Location: "Oslo, NO",
		Current:  models.CurrentConditions{Temperature: -3, Condition: "Snow", Icon: "13n", Humidity: 90, WindSpeed: 4},
	}))

	assert.NotContains(t, out, "Alert")
	assert.NotContains(t, out, forecastTitle)
	assert.Contains(t, out, "❄  -3°C  Snow")
}

// Cairo lookup against a live HTTP server: seven days come back and are shown in order.
func TestCairoSevenDayForecast(t *testing.T) {
	days := []string{"2025-07-26", "2025-07-27", "2025-07-28", "2025-07-29", "2025-07-30", "2025-07-31", "2025-08-01"}
	snapshot := models.WeatherSnapshot{
		Location: "Cairo, EG",
		Current:  models.CurrentConditions{Temperature: 35, Condition: "Clear sky", Icon: "01d", Humidity: 20, WindSpeed: 14.4},
	}
	for i, d := range days {
		snapshot.Forecast = append(snapshot.Forecast, models.ForecastDay{Date: d, Icon: "01d", TempMax: float64(30 + i), TempMin: 20})
	}

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(snapshot))
	}))
	defer server.Close()

	l := logger.NewZapLogger("test-app", io.Discard)
	c := NewController(client.New(server.URL, server.Client(), l), WithLogger(l))

	c.SubmitCityQuery(context.Background(), "Cairo")

	st := c.State()
	require.Equal(t, StatusSuccess, st.Status())
	assert.Equal(t, "city=Cairo", gotQuery)

	forecast := st.Snapshot().Forecast
	require.Len(t, forecast, 7)
	for i, d := range forecast {
		assert.Equal(t, days[i], d.Date)
	}

	out := render(t, st)
	_, panel, found := strings.Cut(out, forecastTitle+"\n")
	require.True(t, found)
	rows := strings.Split(strings.TrimRight(panel, "\n"), "\n")
	require.Len(t, rows, 7)
	assert.True(t, strings.HasPrefix(rows[0], "Sat"))
	assert.True(t, strings.HasSuffix(rows[0], "30° / 20°"))
	assert.True(t, strings.HasPrefix(rows[6], "Fri"))
	assert.True(t, strings.HasSuffix(rows[6], "36° / 20°"))
}
