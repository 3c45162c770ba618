package models

// WeatherSnapshot is one fetched weather result for a location query.
type WeatherSnapshot struct {
	Location string            `json:"location" example:"Cairo, EG"`
	Current  CurrentConditions `json:"current"`
	Forecast []ForecastDay     `json:"forecast"`
	Alert    string            `json:"alert,omitempty" example:"Heat Advisory"`
}

// CurrentConditions holds the observation at fetch time.
type CurrentConditions struct {
	Temperature float64 `json:"temperature" example:"25.0"`
	Condition   string  `json:"condition" example:"Clear sky"`
	Icon        string  `json:"icon" example:"01d"`
	Humidity    int     `json:"humidity" example:"60"`
	WindSpeed   float64 `json:"wind_speed" example:"10.8"`
}

// HasAlert reports whether the provider flagged a severe weather alert.
func (s *WeatherSnapshot) HasAlert() bool {
	return s != nil && s.Alert != ""
}
