package models

import "time"

const DateLayout = "2006-01-02"

// ForecastDay is a single day of the forecast. Date is formatted with DateLayout.
type ForecastDay struct {
	Date      string  `json:"date" example:"2025-07-25"`
	Icon      string  `json:"icon" example:"02d"`
	TempMax   float64 `json:"temp_max" example:"30.0"`
	TempMin   float64 `json:"temp_min" example:"20.0"`
	Condition string  `json:"condition,omitempty" example:"Few clouds"`
}

// Day parses Date. The zero time is returned for malformed dates.
func (d ForecastDay) Day() time.Time {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
